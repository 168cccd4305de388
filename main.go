package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/gadget-scout/server/internal/agent/contextgen"
	"github.com/gadget-scout/server/internal/agent/model"
	"github.com/gadget-scout/server/internal/agent/registry"
	"github.com/gadget-scout/server/internal/agent/repo"
	"github.com/gadget-scout/server/internal/agent/tools"
)

// Demo driver walking the context pipeline through a short shopping
// conversation. The real entrypoint lives in cmd/server.
func main() {
	fmt.Println("Testing context assembly pipeline...")
	ctx := context.Background()

	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	var cfg model.ConversationConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	store := repo.NewMemoryConversationStore(cfg.HistorySize)
	assembler := contextgen.NewAssembler(store, registry.New(), cfg)

	queryTools := tools.GetQueryTools()
	infos, err := tools.GetToolInfos(ctx, queryTools)
	if err != nil {
		log.Fatalf("Failed to resolve tool infos: %v", err)
	}
	fmt.Printf("\nBound %d device lookup tools:\n", len(infos))
	for _, info := range infos {
		fmt.Printf("  %s: %s\n", info.Name, info.Desc)
	}

	testQueries := []struct {
		description string
		query       string
		toolsUsed   []string
	}{
		{
			description: "Direct comparison of two devices",
			query:       "Compare Samsung S24 Ultra and iPhone 15 Pro Max",
			toolsUsed:   []string{"compare_specs", "get_price"},
		},
		{
			description: "Follow-up referring back to the compared devices",
			query:       "Which one has better battery?",
			toolsUsed:   []string{"get_specs"},
		},
		{
			description: "Budget recommendation",
			query:       "Best phone under ₹70,000 for gaming",
			toolsUsed:   []string{"search_devices", "get_specs", "get_price"},
		},
		{
			description: "Price check with a device carried from history",
			query:       "How much does the OnePlus 12 cost?",
			toolsUsed:   []string{"get_price"},
		},
		{
			description: "Review lookup",
			query:       "Is the OnePlus 12 worth it?",
			toolsUsed:   []string{"get_reviews"},
		},
	}

	sessionID := "demo-session-1"

	for i, test := range testQueries {
		fmt.Printf("\nTest %d: %s\n", i+1, test.description)
		fmt.Printf("Query: %q\n", test.query)

		payload, err := assembler.BuildContext(ctx, sessionID, test.query)
		if err != nil {
			log.Fatalf("Failed to build context for test %d: %v", i+1, err)
		}
		rendered, err := payload.JSON()
		if err != nil {
			log.Fatalf("Failed to render context for test %d: %v", i+1, err)
		}
		fmt.Println(rendered)

		if err := assembler.RecordToolUsage(ctx, sessionID, test.toolsUsed, true); err != nil {
			log.Fatalf("Failed to record tool usage for test %d: %v", i+1, err)
		}
	}

	summary, err := assembler.RenderConversationSummary(ctx, sessionID)
	if err != nil {
		log.Fatalf("Failed to render summary: %v", err)
	}
	fmt.Println("\n" + summary)
}
