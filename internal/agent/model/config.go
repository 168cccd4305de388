package model

// ================ Config ================
type ConversationConfig struct {
	HistorySize   int    `envconfig:"CONVERSATION_HISTORY_SIZE" default:"10"`
	EntityWindow  int    `envconfig:"CONVERSATION_ENTITY_WINDOW" default:"3"`
	ThemeWindow   int    `envconfig:"CONVERSATION_THEME_WINDOW" default:"5"`
	SummaryWindow int    `envconfig:"CONVERSATION_SUMMARY_WINDOW" default:"3"`
	TTL           string `envconfig:"CONVERSATION_TTL" default:"15m"`
	Store         struct {
		Backend string `envconfig:"CONVERSATION_STORE_BACKEND" default:"memory"`
	}
}

type ServerConfig struct {
	Name     string `envconfig:"SERVER_NAME" default:"gadget-scout"`
	Version  string `envconfig:"SERVER_VERSION" default:"1.0.0"`
	HTTPMode bool   `envconfig:"HTTP_MODE" default:"false"`
	Addr     string `envconfig:"HTTP_ADDR" default:":8080"`
}
