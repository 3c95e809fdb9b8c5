package bedrock

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"

	"github.com/cdanielsoh/Image-feature-extraction-workshop/pkg/config"
	"github.com/cdanielsoh/Image-feature-extraction-workshop/pkg/imaging"
	"github.com/cdanielsoh/Image-feature-extraction-workshop/pkg/models"
)

// Client wraps the Bedrock runtime for the two model calls the workshop
// makes: Nova Canvas text-to-image via InvokeModel, and multimodal
// extraction via Converse.
type Client struct {
	runtime *bedrockruntime.Client

	canvasModel  string
	extractModel string
	maxTokens    int32
}

// Options controls optional parameters for NewClientWithOptions.
type Options struct {
	CanvasModel  string
	ExtractModel string
	MaxTokens    int32
}

// NewOptions returns sensible defaults.
func NewOptions() Options {
	return Options{
		CanvasModel:  "amazon.nova-canvas-v1:0",
		ExtractModel: "us.amazon.nova-lite-v1:0",
		MaxTokens:    1024,
	}
}

// NewClientWithOptions builds a client on top of an already-configured
// runtime. Credentials come from the ambient AWS credential chain.
func NewClientWithOptions(runtime *bedrockruntime.Client, opts Options) (*Client, error) {
	if runtime == nil {
		return nil, errors.New("nil bedrock runtime")
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = 1024
	}
	return &Client{
		runtime:      runtime,
		canvasModel:  opts.CanvasModel,
		extractModel: opts.ExtractModel,
		maxTokens:    opts.MaxTokens,
	}, nil
}

// NewFromConfig constructs a client from app config, loading the default
// AWS credential chain for the configured region.
func NewFromConfig(ctx context.Context, cfg config.Config) (*Client, error) {
	opts := NewOptions()
	if cfg.Bedrock.CanvasModel != "" {
		opts.CanvasModel = cfg.Bedrock.CanvasModel
	}
	if cfg.Bedrock.ExtractModel != "" {
		opts.ExtractModel = cfg.Bedrock.ExtractModel
	}
	if cfg.Bedrock.MaxTokens > 0 {
		opts.MaxTokens = int32(cfg.Bedrock.MaxTokens)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Bedrock.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return NewClientWithOptions(bedrockruntime.NewFromConfig(awsCfg), opts)
}

// Nova Canvas request/response bodies. The task shape is fixed by the
// model; see the Amazon Nova Canvas InvokeModel documentation.
type canvasRequest struct {
	TaskType              string                `json:"taskType"`
	TextToImageParams     textToImageParams     `json:"textToImageParams"`
	ImageGenerationConfig imageGenerationConfig `json:"imageGenerationConfig"`
}

type textToImageParams struct {
	Text string `json:"text"`
}

type imageGenerationConfig struct {
	NumberOfImages int     `json:"numberOfImages"`
	Quality        string  `json:"quality,omitempty"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	CfgScale       float64 `json:"cfgScale"`
	Seed           *int64  `json:"seed,omitempty"`
}

type canvasResponse struct {
	Images []string `json:"images"`
	Error  string   `json:"error,omitempty"`
}

// GenerateImage asks Nova Canvas for a single image matching text and
// returns the decoded bytes. An error response, an empty image list or an
// undecodable payload is always an error, never a silent nil.
func (c *Client) GenerateImage(ctx context.Context, text string, p models.GenerationParams) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("empty description")
	}

	req := canvasRequest{
		TaskType:          "TEXT_IMAGE",
		TextToImageParams: textToImageParams{Text: text},
		ImageGenerationConfig: imageGenerationConfig{
			NumberOfImages: 1,
			Quality:        p.Quality,
			Width:          p.Width,
			Height:         p.Height,
			CfgScale:       p.CFGScale,
			Seed:           p.Seed,
		},
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal canvas request: %w", err)
	}

	out, err := c.runtime.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(c.canvasModel),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return nil, fmt.Errorf("invoke %s: %w", c.canvasModel, err)
	}

	var resp canvasResponse
	if err := json.Unmarshal(out.Body, &resp); err != nil {
		return nil, fmt.Errorf("decode canvas response: %w", err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("canvas error: %s", resp.Error)
	}
	if len(resp.Images) == 0 {
		return nil, errors.New("canvas returned no images")
	}

	img, err := base64.StdEncoding.DecodeString(resp.Images[0])
	if err != nil {
		return nil, fmt.Errorf("decode image payload: %w", err)
	}
	if len(img) == 0 {
		return nil, errors.New("canvas returned an empty image")
	}
	return img, nil
}

// ExtractText sends an image plus a text prompt through Converse and
// returns the textual reply with token usage.
func (c *Client) ExtractText(ctx context.Context, prompt string, image []byte) (*models.Reply, error) {
	if prompt == "" {
		return nil, errors.New("empty prompt")
	}
	format, err := imageFormat(image)
	if err != nil {
		return nil, err
	}

	out, err := c.runtime.Converse(ctx, &bedrockruntime.ConverseInput{
		ModelId: aws.String(c.extractModel),
		Messages: []types.Message{
			{
				Role: types.ConversationRoleUser,
				Content: []types.ContentBlock{
					&types.ContentBlockMemberImage{Value: types.ImageBlock{
						Format: format,
						Source: &types.ImageSourceMemberBytes{Value: image},
					}},
					&types.ContentBlockMemberText{Value: prompt},
				},
			},
		},
		InferenceConfig: &types.InferenceConfiguration{
			MaxTokens: aws.Int32(c.maxTokens),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("converse %s: %w", c.extractModel, err)
	}

	msg, ok := out.Output.(*types.ConverseOutputMemberMessage)
	if !ok || len(msg.Value.Content) == 0 {
		return nil, errors.New("converse returned no message content")
	}

	var sb strings.Builder
	for _, block := range msg.Value.Content {
		if t, ok := block.(*types.ContentBlockMemberText); ok {
			sb.WriteString(t.Value)
		}
	}

	reply := &models.Reply{
		Text:       sb.String(),
		Model:      c.extractModel,
		StopReason: string(out.StopReason),
	}
	if out.Usage != nil {
		if out.Usage.InputTokens != nil {
			reply.Usage.InputTokens = *out.Usage.InputTokens
		}
		if out.Usage.OutputTokens != nil {
			reply.Usage.OutputTokens = *out.Usage.OutputTokens
		}
		if out.Usage.TotalTokens != nil {
			reply.Usage.TotalTokens = *out.Usage.TotalTokens
		}
	}
	return reply, nil
}

// imageFormat maps a sniffed media type onto the Converse image format enum.
func imageFormat(image []byte) (types.ImageFormat, error) {
	mt, err := imaging.MediaType(image)
	if err != nil {
		return "", err
	}
	switch mt {
	case "image/png":
		return types.ImageFormatPng, nil
	case "image/jpeg":
		return types.ImageFormatJpeg, nil
	case "image/gif":
		return types.ImageFormatGif, nil
	case "image/webp":
		return types.ImageFormatWebp, nil
	default:
		return "", fmt.Errorf("unsupported media type %s", mt)
	}
}
