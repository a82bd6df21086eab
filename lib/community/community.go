// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package community

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"sync"
)

type conference struct {
	speakers map[SpeakerID]Speaker
	talks    map[TalkID]Talk
	rooms    map[RoomID]Room
	nextRoom int
}

// Community is an in-memory store of conferences. It is the dispatch
// context of the routing table and is safe for concurrent use.
type Community struct {
	mu          sync.Mutex
	conferences map[ConferenceID]*conference
}

// New returns an empty Community.
func New() *Community {
	return &Community{conferences: make(map[ConferenceID]*conference)}
}

// AddConference registers a conference. Adding an existing conference
// is a no-op.
func (c *Community) AddConference(id ConferenceID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.conferences[id]; exists {
		return
	}
	c.conferences[id] = &conference{
		speakers: make(map[SpeakerID]Speaker),
		talks:    make(map[TalkID]Talk),
		rooms:    make(map[RoomID]Room),
	}
}

// AddSpeaker registers a speaker at a conference.
func (c *Community) AddSpeaker(conferenceID ConferenceID, speaker Speaker) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	conf, ok := c.conferences[conferenceID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownConference, conferenceID)
	}
	if _, exists := conf.speakers[speaker.ID]; exists {
		return fmt.Errorf("speaker %s %w", speaker.ID, ErrDuplicate)
	}
	conf.speakers[speaker.ID] = speaker
	return nil
}

// AddTalk schedules a talk. Its room and speakers must already exist.
func (c *Community) AddTalk(conferenceID ConferenceID, talk Talk) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	conf, ok := c.conferences[conferenceID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownConference, conferenceID)
	}
	if _, exists := conf.talks[talk.ID]; exists {
		return fmt.Errorf("talk %s %w", talk.ID, ErrDuplicate)
	}
	if talk.Room != "" {
		if _, ok := conf.rooms[talk.Room]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownRoom, talk.Room)
		}
	}
	for _, speaker := range talk.Speakers {
		if _, ok := conf.speakers[speaker]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownSpeaker, speaker)
		}
	}
	talk.Speakers = slices.Clone(talk.Speakers)
	conf.talks[talk.ID] = talk
	return nil
}

// GetSpeaker returns the speaker, or nil if the conference or speaker
// does not exist.
func (c *Community) GetSpeaker(conferenceID ConferenceID, speakerID SpeakerID) *Speaker {
	c.mu.Lock()
	defer c.mu.Unlock()

	conf, ok := c.conferences[conferenceID]
	if !ok {
		return nil
	}
	speaker, ok := conf.speakers[speakerID]
	if !ok {
		return nil
	}
	return &speaker
}

// AddRoom creates a room with the next free numeric ID.
func (c *Community) AddRoom(conferenceID ConferenceID) (Room, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	conf, ok := c.conferences[conferenceID]
	if !ok {
		return Room{}, fmt.Errorf("%w: %s", ErrUnknownConference, conferenceID)
	}
	for {
		conf.nextRoom++
		id := RoomID(strconv.Itoa(conf.nextRoom))
		if _, taken := conf.rooms[id]; taken {
			continue
		}
		room := Room{ID: id, Conference: conferenceID}
		conf.rooms[id] = room
		return room, nil
	}
}

// RemoveTalk deletes a talk and returns it, or nil if it did not exist.
func (c *Community) RemoveTalk(conferenceID ConferenceID, talkID TalkID) *Talk {
	c.mu.Lock()
	defer c.mu.Unlock()

	conf, ok := c.conferences[conferenceID]
	if !ok {
		return nil
	}
	talk, ok := conf.talks[talkID]
	if !ok {
		return nil
	}
	delete(conf.talks, talkID)
	return &talk
}

// GetRoomTalks lists the talks scheduled in a room, ordered by ID.
func (c *Community) GetRoomTalks(conferenceID ConferenceID, roomID RoomID) []Talk {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.roomTalks(conferenceID, roomID)
}

// GetRoomSpeakers lists the distinct speakers of the talks in a room,
// ordered by ID.
func (c *Community) GetRoomSpeakers(conferenceID ConferenceID, roomID RoomID) []Speaker {
	c.mu.Lock()
	defer c.mu.Unlock()

	conf, ok := c.conferences[conferenceID]
	if !ok {
		return nil
	}
	seen := make(map[SpeakerID]bool)
	var speakers []Speaker
	for _, talk := range c.roomTalks(conferenceID, roomID) {
		for _, id := range talk.Speakers {
			if seen[id] {
				continue
			}
			seen[id] = true
			if speaker, ok := conf.speakers[id]; ok {
				speakers = append(speakers, speaker)
			}
		}
	}
	slices.SortFunc(speakers, func(a, b Speaker) int { return cmp.Compare(a.ID, b.ID) })
	return speakers
}

// roomTalks must be called with c.mu held.
func (c *Community) roomTalks(conferenceID ConferenceID, roomID RoomID) []Talk {
	conf, ok := c.conferences[conferenceID]
	if !ok {
		return nil
	}
	var talks []Talk
	for _, talk := range conf.talks {
		if talk.Room == roomID {
			talks = append(talks, talk)
		}
	}
	slices.SortFunc(talks, func(a, b Talk) int { return cmp.Compare(a.ID, b.ID) })
	return talks
}
