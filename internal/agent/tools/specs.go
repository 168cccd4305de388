package tools

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/gadget-scout/server/internal/agent/registry"
)

type GetSpecsInput struct {
	DeviceName string `json:"device_name"`
}

type GetSpecsOutput struct {
	Name    string            `json:"name"`
	Brand   string            `json:"brand"`
	Specs   map[string]string `json:"specs"`
	InStock bool              `json:"in_stock"`
}

func createGetSpecsTool() tool.BaseTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: registry.ToolGetSpecs,
			Desc: "Get detailed technical specifications for a specific device. Use when the user asks about a phone's features or technical details, or to prepare a comparison.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"device_name": {
					Type:     "string",
					Desc:     "Exact device name, e.g. 'Samsung S24 Ultra'.",
					Required: true,
				},
			}),
		},
		func(ctx context.Context, in *GetSpecsInput) (*GetSpecsOutput, error) {
			if in.DeviceName == "" {
				return nil, fmt.Errorf("device_name is required")
			}
			d, ok := FindDevice(in.DeviceName)
			if !ok {
				return nil, fmt.Errorf("device not found: %s", in.DeviceName)
			}
			return &GetSpecsOutput{
				Name:    d.Name,
				Brand:   d.Brand,
				Specs:   d.Specs,
				InStock: d.InStock,
			}, nil
		},
	)
}
