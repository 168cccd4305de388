package tools

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/gadget-scout/server/internal/agent/model"
	"github.com/gadget-scout/server/internal/agent/registry"
)

type GetReviewsInput struct {
	DeviceName string `json:"device_name"`
}

func createGetReviewsTool() tool.BaseTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: registry.ToolGetReviews,
			Desc: "Get aggregated user reviews, ratings, pros and cons for a device. Use when the user asks about opinions, whether a phone is worth it, or its strengths and weaknesses.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"device_name": {
					Type:     "string",
					Desc:     "Exact device name, e.g. 'Google Pixel 8 Pro'.",
					Required: true,
				},
			}),
		},
		func(ctx context.Context, in *GetReviewsInput) (*model.DeviceReviews, error) {
			if in.DeviceName == "" {
				return nil, fmt.Errorf("device_name is required")
			}
			reviews, err := ReviewsFor(in.DeviceName)
			if err != nil {
				return nil, err
			}
			return &reviews, nil
		},
	)
}
