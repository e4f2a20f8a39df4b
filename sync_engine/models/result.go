package models

import "time"

// KindResult counts what pull did for one kind.
type KindResult struct {
	Kind    Kind   `json:"kind" yaml:"kind"`
	Written int    `json:"written" yaml:"written"`
	Skipped int    `json:"skipped" yaml:"skipped"`
	Failed  bool   `json:"failed" yaml:"failed"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
}

// PullResult summarizes a pull.
type PullResult struct {
	Dir         string       `json:"dir" yaml:"dir"`
	CompanyID   int64        `json:"company_id" yaml:"company_id"`
	CompanyName string       `json:"company_name" yaml:"company_name"`
	PulledAt    time.Time    `json:"pulled_at" yaml:"pulled_at"`
	Kinds       []KindResult `json:"kinds" yaml:"kinds"`
}

// Written returns the total number of files written.
func (r *PullResult) Written() int {
	total := 0
	for _, kind := range r.Kinds {
		total += kind.Written
	}
	return total
}

// FailedKinds lists the kinds whose fetch failed.
func (r *PullResult) FailedKinds() []Kind {
	var failed []Kind
	for _, kind := range r.Kinds {
		if kind.Failed {
			failed = append(failed, kind.Kind)
		}
	}
	return failed
}

// Failure is one record push could not send.
type Failure struct {
	Kind    Kind   `json:"kind" yaml:"kind"`
	File    string `json:"file" yaml:"file"`
	Action  Action `json:"action" yaml:"action"`
	Message string `json:"message" yaml:"message"`
}

// PushResult summarizes a push.
type PushResult struct {
	Pushed      int       `json:"pushed" yaml:"pushed"`
	Created     int       `json:"created" yaml:"created"`
	Updated     int       `json:"updated" yaml:"updated"`
	Errors      int       `json:"errors" yaml:"errors"`
	Failures    []Failure `json:"failures,omitempty" yaml:"failures,omitempty"`
	NothingToDo bool      `json:"nothing_to_do" yaml:"nothing_to_do"`
	Interrupted bool      `json:"interrupted,omitempty" yaml:"interrupted,omitempty"`
}

// TotalFailure reports whether nothing went through although something was tried.
func (r *PushResult) TotalFailure() bool {
	return r.Errors > 0 && r.Pushed == 0
}
