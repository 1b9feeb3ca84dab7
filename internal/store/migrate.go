package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	tableSessionEvents = "session_events"
	tableAnswerEvents  = "answer_events"
	tableLLMEvents     = "llm_request_events"
)

// eventColumns returns the id, sequence and timestamp columns every event
// table starts with.
func eventColumns() []*schema.Column {
	return []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
	}
}

var (
	sessionEventsColumns = append(eventColumns(),
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "action", Type: field.TypeString},
		&schema.Column{Name: "nickname", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "total_questions", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "answered", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "dominant", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "tally", Type: field.TypeJSON, Nullable: true},
	)
	sessionEventsTable = &schema.Table{
		Name:       tableSessionEvents,
		Columns:    sessionEventsColumns,
		PrimaryKey: []*schema.Column{sessionEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "sessionevent_session_id", Columns: []*schema.Column{sessionEventsColumns[3]}},
			{Name: "sessionevent_action", Columns: []*schema.Column{sessionEventsColumns[4]}},
		},
	}

	answerEventsColumns = append(eventColumns(),
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "question_id", Type: field.TypeInt},
		&schema.Column{Name: "persona", Type: field.TypeString},
		&schema.Column{Name: "option_label", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "overwrote", Type: field.TypeBool, Default: false},
	)
	answerEventsTable = &schema.Table{
		Name:       tableAnswerEvents,
		Columns:    answerEventsColumns,
		PrimaryKey: []*schema.Column{answerEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "answerevent_session_id", Columns: []*schema.Column{answerEventsColumns[3]}},
			{Name: "answerevent_persona", Columns: []*schema.Column{answerEventsColumns[5]}},
		},
	}

	llmEventsColumns = append(eventColumns(),
		&schema.Column{Name: "provider", Type: field.TypeString},
		&schema.Column{Name: "model", Type: field.TypeString},
		&schema.Column{Name: "purpose", Type: field.TypeString},
		&schema.Column{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		&schema.Column{Name: "success", Type: field.TypeBool},
		&schema.Column{Name: "error_message", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		&schema.Column{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	)
	llmEventsTable = &schema.Table{
		Name:       tableLLMEvents,
		Columns:    llmEventsColumns,
		PrimaryKey: []*schema.Column{llmEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequestevent_purpose", Columns: []*schema.Column{llmEventsColumns[5]}},
		},
	}

	tables = []*schema.Table{sessionEventsTable, answerEventsTable, llmEventsTable}
)

// migrate creates or updates the event tables.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("new migrate: %w", err)
	}
	return m.Create(ctx, tables...)
}
