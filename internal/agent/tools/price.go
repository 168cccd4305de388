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

type GetPriceInput struct {
	DeviceName string `json:"device_name"`
}

func createGetPriceTool() tool.BaseTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: registry.ToolGetPrice,
			Desc: "Get pricing from multiple retailers (Amazon, Flipkart, Croma) with the lowest price highlighted. Use when the user asks about price, budget fit, or the cheapest option.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"device_name": {
					Type:     "string",
					Desc:     "Exact device name, e.g. 'OnePlus 12'.",
					Required: true,
				},
			}),
		},
		func(ctx context.Context, in *GetPriceInput) (*model.DevicePricing, error) {
			if in.DeviceName == "" {
				return nil, fmt.Errorf("device_name is required")
			}
			pricing, err := PriceDevice(in.DeviceName)
			if err != nil {
				return nil, err
			}
			return &pricing, nil
		},
	)
}
