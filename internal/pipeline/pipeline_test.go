package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"image-identifier/internal/llm"
)

var testImage = llm.InlineData{Data: "YWJj", MIMEType: "image/png"}

func newTestPipeline(client llm.Client) *Pipeline {
	return New(client, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func isQuestionsPrompt(prompt string) bool {
	return strings.HasPrefix(prompt, "Based on the following information about an image")
}

func TestGenerateQuestions(t *testing.T) {
	tests := []struct {
		name string
		resp string
		err  error
		want []string
	}{
		{
			name: "one question per line",
			resp: "What is it?\nWhere does it grow?\n",
			want: []string{"What is it?", "Where does it grow?"},
		},
		{
			name: "lines are not validated or capped",
			resp: "1. A?\n2. B?\n\n3. C?\n4. D?\n5. E?\n6. F?",
			want: []string{"1. A?", "2. B?", "", "3. C?", "4. D?", "5. E?", "6. F?"},
		},
		{
			name: "duplicates are kept",
			resp: "Why?\nWhy?",
			want: []string{"Why?", "Why?"},
		},
		{
			name: "empty response",
			resp: "  \n",
			want: []string{},
		},
		{
			name: "provider error is swallowed",
			err:  errors.New("deadline exceeded"),
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(llm.MockClient)
			client.On("Generate", mock.Anything, QuestionsPrompt("Aloe vera"), (*llm.InlineData)(nil)).
				Return(tt.resp, tt.err).Once()

			got := newTestPipeline(client).GenerateQuestions(context.Background(), "Aloe vera")
			assert.Equal(t, tt.want, got)
			client.AssertExpectations(t)
		})
	}
}

func TestIdentify(t *testing.T) {
	client := new(llm.MockClient)
	var calls []string
	client.On("Generate", mock.Anything, IdentifyPrompt, &testImage).
		Run(func(args mock.Arguments) { calls = append(calls, "identify") }).
		Return("**Aloe vera**\n- succulent plant\n\n\nImportant Information:\n1. Water sparingly", nil).Once()
	client.On("Generate", mock.Anything, mock.MatchedBy(isQuestionsPrompt), (*llm.InlineData)(nil)).
		Run(func(args mock.Arguments) {
			calls = append(calls, "questions")
			assert.Contains(t, args.String(1), "Aloe vera\nsucculent plant")
		}).
		Return("Is aloe toxic?\nHow often to water?", nil).Once()

	res, err := newTestPipeline(client).Identify(context.Background(), testImage, "")
	require.NoError(t, err)

	assert.Equal(t, []string{"identify", "questions"}, calls)
	assert.Equal(t, "Aloe vera\nsucculent plant\nImportant Information:\n1. Water sparingly", res.Text)
	assert.Equal(t, []string{"succulent", "plant", "Important", "Information:", "Water"}, res.Keywords)
	assert.Equal(t, []string{"Is aloe toxic?", "How often to water?"}, res.Questions)
	require.Len(t, res.Lines, 4)
	assert.Equal(t, Heading, res.Lines[2].Kind)
	assert.Equal(t, ListItem, res.Lines[3].Kind)
	client.AssertExpectations(t)
}

func TestIdentifyWithInstruction(t *testing.T) {
	client := new(llm.MockClient)
	want := IdentifyPrompt + ` Focus more on aspects related to "greenhouse".`
	client.On("Generate", mock.Anything, want, &testImage).Return("Tomato plant", nil).Once()
	client.On("Generate", mock.Anything, mock.MatchedBy(isQuestionsPrompt), (*llm.InlineData)(nil)).
		Return("", errors.New("quota")).Once()

	res, err := newTestPipeline(client).Identify(context.Background(), testImage, FocusInstruction("greenhouse"))
	require.NoError(t, err)
	assert.Equal(t, "Tomato plant", res.Text)
	assert.Equal(t, []string{"Tomato", "plant"}, res.Keywords)
	assert.Empty(t, res.Questions)
	client.AssertExpectations(t)
}

func TestIdentifyFailure(t *testing.T) {
	client := new(llm.MockClient)
	client.On("Generate", mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("permission denied")).Once()

	_, err := newTestPipeline(client).Identify(context.Background(), testImage, "")
	require.Error(t, err)
	var ierr *IdentifyError
	require.True(t, errors.As(err, &ierr))
	assert.Equal(t, "image", ierr.Subject)
	assert.Equal(t, "identify image: permission denied", err.Error())
	client.AssertNumberOfCalls(t, "Generate", 1)
}

func TestProcessEmptyResponseSkipsQuestions(t *testing.T) {
	client := new(llm.MockClient)
	res := newTestPipeline(client).Process(context.Background(), "```\n\n```")
	assert.True(t, res.Empty())
	assert.Empty(t, res.Keywords)
	assert.Empty(t, res.Questions)
	assert.Nil(t, res.Lines)
	client.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
}

func TestIdentifyPlant(t *testing.T) {
	client := new(llm.MockClient)
	client.On("Generate", mock.Anything, PlantPrompt, &testImage).Return("**Fern**", nil).Once()

	raw, err := newTestPipeline(client).IdentifyPlant(context.Background(), testImage)
	require.NoError(t, err)
	assert.Equal(t, "**Fern**", raw)

	failing := new(llm.MockClient)
	failing.On("Generate", mock.Anything, PlantPrompt, &testImage).Return("", errors.New("bad key")).Once()
	_, err = newTestPipeline(failing).IdentifyPlant(context.Background(), testImage)
	var ierr *IdentifyError
	require.True(t, errors.As(err, &ierr))
	assert.Equal(t, "plant", ierr.Subject)
}

func TestPrompts(t *testing.T) {
	assert.Equal(t, IdentifyPrompt, BuildIdentifyPrompt(""))
	assert.True(t, strings.HasSuffix(BuildIdentifyPrompt(FocusInstruction("greenhouse")),
		`image. Focus more on aspects related to "greenhouse".`))
	assert.Equal(t, `Answer the following question about the image: "Is it edible?"`, AnswerInstruction("Is it edible?"))

	q := QuestionsPrompt("Fern\nShade plant")
	assert.Contains(t, q, "generate 5 related questions")
	assert.Contains(t, q, "\n\nFern\nShade plant\n\n")
	assert.True(t, strings.HasSuffix(q, "one per line."))
}
