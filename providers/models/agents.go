package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Agent is an AI agent configured for the company.
type Agent struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

func (a Agent) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.ID, validation.Required),
		validation.Field(&a.Name, validation.Required),
	)
}

// AgentReply is the answer of an agent chat turn.
type AgentReply struct {
	Response       string `json:"response"`
	ConversationID string `json:"conversation_id,omitempty"`
}

func (r AgentReply) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Response, validation.Required),
	)
}

// Answer is the reply of the natural-language endpoint.
type Answer struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources,omitempty"`
}

func (a Answer) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Answer, validation.Required),
	)
}
