// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package community

import (
	"errors"
	"fmt"
	"strings"
)

// ConferenceID identifies a conference.
type ConferenceID string

// SpeakerID identifies a speaker within a conference.
type SpeakerID string

// TalkID identifies a talk within a conference.
type TalkID string

// RoomID identifies a room within a conference.
type RoomID string

func (id *ConferenceID) UnmarshalText(text []byte) error {
	value, err := parseIdentifier("conference", text)
	*id = ConferenceID(value)
	return err
}

func (id *SpeakerID) UnmarshalText(text []byte) error {
	value, err := parseIdentifier("speaker", text)
	*id = SpeakerID(value)
	return err
}

func (id *TalkID) UnmarshalText(text []byte) error {
	value, err := parseIdentifier("talk", text)
	*id = TalkID(value)
	return err
}

func (id *RoomID) UnmarshalText(text []byte) error {
	value, err := parseIdentifier("room", text)
	*id = RoomID(value)
	return err
}

func (id ConferenceID) MarshalText() ([]byte, error) { return []byte(id), nil }
func (id SpeakerID) MarshalText() ([]byte, error)    { return []byte(id), nil }
func (id TalkID) MarshalText() ([]byte, error)       { return []byte(id), nil }
func (id RoomID) MarshalText() ([]byte, error)       { return []byte(id), nil }

// parseIdentifier accepts a non-empty token without slashes or
// whitespace.
func parseIdentifier(kind string, text []byte) (string, error) {
	value := string(text)
	if value == "" {
		return "", fmt.Errorf("empty %s id", kind)
	}
	if strings.ContainsAny(value, "/ \t\r\n") {
		return "", fmt.Errorf("invalid %s id %q", kind, value)
	}
	return value, nil
}

// Speaker is a person presenting at a conference.
type Speaker struct {
	ID   SpeakerID `json:"id"`
	Name string    `json:"name"`
}

// Talk is a scheduled presentation.
type Talk struct {
	ID       TalkID      `json:"id"`
	Title    string      `json:"title"`
	Room     RoomID      `json:"room,omitempty"`
	Speakers []SpeakerID `json:"speakers,omitempty"`
}

// Room is a venue room within a conference.
type Room struct {
	ID         RoomID       `json:"id"`
	Conference ConferenceID `json:"conference"`
}

var (
	ErrUnknownConference = errors.New("unknown conference")
	ErrUnknownRoom       = errors.New("unknown room")
	ErrUnknownSpeaker    = errors.New("unknown speaker")
	ErrDuplicate         = errors.New("already exists")
)
