package tools

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"
)

// GetQueryTools returns the full device lookup toolset for binding to a
// dialogue graph.
func GetQueryTools() []tool.BaseTool {
	return []tool.BaseTool{
		createSearchDevicesTool(),
		createGetSpecsTool(),
		createGetPriceTool(),
		createGetReviewsTool(),
		createCompareSpecsTool(),
	}
}

// GetToolInfos resolves the schema info for each tool.
func GetToolInfos(ctx context.Context, ts []tool.BaseTool) ([]*schema.ToolInfo, error) {
	infos := make([]*schema.ToolInfo, 0, len(ts))
	for _, t := range ts {
		info, err := t.Info(ctx)
		if err != nil {
			return nil, fmt.Errorf("get tool info: %w", err)
		}
		infos = append(infos, info)
	}
	return infos, nil
}
