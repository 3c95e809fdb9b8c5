package openai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/cdanielsoh/Image-feature-extraction-workshop/pkg/imaging"
	"github.com/cdanielsoh/Image-feature-extraction-workshop/pkg/models"
)

// Client is an alternative extraction backend for OpenAI-compatible
// gateways, useful when the workshop runs without AWS credentials.
type Client struct {
	client openai.Client
	model  string
}

func isModelInList(model string, models []openai.Model) bool {
	for i := range models {
		if models[i].ID == model {
			return true
		}
	}

	return false
}

func NewClient(key string, url string, model string) (*Client, error) {
	client := openai.NewClient(option.WithAPIKey(key), option.WithBaseURL(url))

	// Test connectivity by listing models
	modelList, err := client.Models.List(context.Background())
	if err != nil {
		return nil, fmt.Errorf("connection test failed: %w", err)
	}

	if !isModelInList(model, modelList.Data) {
		return nil, fmt.Errorf("such model does not exists: %s", model)
	}

	return &Client{
		client: client,
		model:  model,
	}, nil
}

func (c *Client) makePromptParams(prompt string, imageURL string) openai.ChatCompletionNewParams {
	return openai.ChatCompletionNewParams{
		Model:     openai.ChatModel(c.model),
		MaxTokens: openai.Int(1024),
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfArrayOfContentParts: []openai.ChatCompletionContentPartUnionParam{
							{OfText: &openai.ChatCompletionContentPartTextParam{
								Text: prompt,
							}},
							{OfImageURL: &openai.ChatCompletionContentPartImageParam{
								ImageURL: openai.ChatCompletionContentPartImageImageURLParam{
									URL:    imageURL,
									Detail: "auto",
								},
							}},
						},
					},
				},
			},
		},
	}
}

// ExtractText sends the image as a base64 data URL alongside the prompt.
func (c *Client) ExtractText(ctx context.Context, prompt string, image []byte) (*models.Reply, error) {
	imageURL, err := imaging.DataURL(image)
	if err != nil {
		return nil, err
	}

	params := c.makePromptParams(prompt, imageURL)
	response, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai request failed: %w", err)
	}
	if len(response.Choices) == 0 {
		return nil, fmt.Errorf("openai returned no choices")
	}

	out := &models.Reply{
		Text:       response.Choices[0].Message.Content,
		Model:      response.Model,
		StopReason: response.Choices[0].FinishReason,
		Usage: models.Usage{
			InputTokens:  int32(response.Usage.PromptTokens),
			OutputTokens: int32(response.Usage.CompletionTokens),
			TotalTokens:  int32(response.Usage.TotalTokens),
		},
	}
	return out, nil
}
