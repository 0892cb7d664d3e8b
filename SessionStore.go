package main

import (
	"errors"
)

type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleTeacher Role = "TEACHER"
	RoleStudent Role = "STUDENT"
)

var ErrIncompleteSession = errors.New("session requires both token and role")

type Session struct {
	Token string `json:"token"`
	Role  Role   `json:"role"`
}

type SessionStoreInterface interface {
	Save(token string, role Role) error
	Read() Session
	Clear() error
}

func (session Session) IsPresent() bool {
	return session.Token != "" && session.Role != ""
}

func (role Role) IsKnown() bool {
	return role == RoleAdmin || role == RoleTeacher || role == RoleStudent
}

func newSession(token string, role Role) (Session, error) {
	if token == "" || role == "" {
		return Session{}, ErrIncompleteSession
	}

	return Session{Token: token, Role: role}, nil
}
