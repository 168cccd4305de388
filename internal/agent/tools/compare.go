package tools

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/gadget-scout/server/internal/agent/registry"
)

type CompareSpecsInput struct {
	Device1 string `json:"device1"`
	Device2 string `json:"device2"`
}

type CompareSpecsOutput struct {
	Device1 string               `json:"device1"`
	Device2 string               `json:"device2"`
	Specs   map[string][2]string `json:"specs"`
	Prices  [2]float64           `json:"prices"`
}

func createCompareSpecsTool() tool.BaseTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: registry.ToolCompareSpecs,
			Desc: "Side-by-side specification comparison of two devices. Use when the user explicitly compares, says 'vs' or 'which is better', or is deciding between two phones.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"device1": {
					Type:     "string",
					Desc:     "First device name.",
					Required: true,
				},
				"device2": {
					Type:     "string",
					Desc:     "Second device name.",
					Required: true,
				},
			}),
		},
		func(ctx context.Context, in *CompareSpecsInput) (*CompareSpecsOutput, error) {
			if in.Device1 == "" || in.Device2 == "" {
				return nil, fmt.Errorf("device1 and device2 are required")
			}
			table, d1, d2, err := CompareDevices(in.Device1, in.Device2)
			if err != nil {
				return nil, err
			}
			return &CompareSpecsOutput{
				Device1: d1.Name,
				Device2: d2.Name,
				Specs:   table,
				Prices:  [2]float64{d1.Price, d2.Price},
			}, nil
		},
	)
}
