package pipeline

const (
	// IdentifyPrompt is the base prompt of every identify call.
	IdentifyPrompt = "Identify this image and provide its name and important information including a brief explanation about that image."

	// PlantPrompt backs the plain /api/identify-image route.
	PlantPrompt = "Identify this plant and provide its name and important information."

	questionsPromptHead = "Based on the following information about an image, generate 5 related questions that someone might ask to learn more about the subject:\n\n"
	questionsPromptTail = "\n\nFormat the output as a simple list of questions, one per line."
)

// BuildIdentifyPrompt appends an optional regeneration instruction to the base prompt.
func BuildIdentifyPrompt(instruction string) string {
	if instruction == "" {
		return IdentifyPrompt
	}
	return IdentifyPrompt + " " + instruction
}

// FocusInstruction steers a regeneration towards a clicked keyword.
func FocusInstruction(keyword string) string {
	return `Focus more on aspects related to "` + keyword + `".`
}

// AnswerInstruction asks the model to answer a clicked related question.
func AnswerInstruction(question string) string {
	return `Answer the following question about the image: "` + question + `"`
}

// QuestionsPrompt embeds cleaned text verbatim in the related-questions request.
func QuestionsPrompt(text string) string {
	return questionsPromptHead + text + questionsPromptTail
}
