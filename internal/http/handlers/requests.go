package handlers

import (
	"net/mail"
	"time"

	"github.com/google/uuid"
)

// Request bodies are bound into typed structs and validated explicitly at
// the API boundary; repositories never see unchecked input.

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (r registerRequest) validate() []string {
	var problems []string
	if _, err := mail.ParseAddress(r.Email); err != nil {
		problems = append(problems, "email must be a valid address")
	}
	if len(r.Password) < 6 {
		problems = append(problems, "password must be at least 6 characters")
	}
	if len(r.Name) < 2 {
		problems = append(problems, "name must be at least 2 characters")
	}
	return problems
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r loginRequest) validate() []string {
	var problems []string
	if r.Email == "" {
		problems = append(problems, "email is required")
	}
	if r.Password == "" {
		problems = append(problems, "password is required")
	}
	return problems
}

type taskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Deadline    *string `json:"deadline"`
	GroupID     *string `json:"groupId"`
}

// taskInput is the validated form of taskRequest. An absent groupId and an
// explicit null are the same signal: no group.
type taskInput struct {
	Title       string
	Description *string
	Deadline    *time.Time
	GroupID     *uuid.UUID
}

func (r taskRequest) validate() (taskInput, []string) {
	var problems []string
	in := taskInput{Title: r.Title, Description: r.Description}

	if r.Title == "" {
		problems = append(problems, "title is required")
	}
	if r.Deadline != nil {
		t, err := time.Parse(time.RFC3339, *r.Deadline)
		if err != nil {
			problems = append(problems, "deadline must be an RFC 3339 datetime")
		} else {
			in.Deadline = &t
		}
	}
	if r.GroupID != nil {
		id, err := uuid.Parse(*r.GroupID)
		if err != nil {
			problems = append(problems, "groupId must be a valid uuid")
		} else {
			in.GroupID = &id
		}
	}
	return in, problems
}

type groupRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func (r groupRequest) validate() []string {
	if r.Name == "" {
		return []string{"name is required"}
	}
	return nil
}
