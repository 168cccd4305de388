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

type SearchDevicesInput struct {
	Query      string `json:"query"`
	MaxResults int    `json:"max_results,omitempty"`
}

type SearchDevicesOutput struct {
	Devices []model.Device `json:"devices"`
	Total   int            `json:"total"`
}

func createSearchDevicesTool() tool.BaseTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: registry.ToolSearchDevices,
			Desc: "Search smartphone database by name, brand, or features. Use when the user wants recommendations, mentions a budget or feature, or wants to explore options.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"query": {
					Type:     "string",
					Desc:     "Search keywords: brand, model, or a spec keyword like '5000mAh' or 'AMOLED'.",
					Required: true,
				},
				"max_results": {
					Type: "number",
					Desc: "Maximum number of devices to return (default: 10)",
				},
			}),
		},
		func(ctx context.Context, in *SearchDevicesInput) (*SearchDevicesOutput, error) {
			if in.Query == "" {
				return nil, fmt.Errorf("query is required")
			}
			if in.MaxResults == 0 {
				in.MaxResults = 10
			}

			matched := SearchDevices(in.Query)
			if len(matched) > in.MaxResults {
				matched = matched[:in.MaxResults]
			}
			return &SearchDevicesOutput{Devices: matched, Total: len(matched)}, nil
		},
	)
}
