// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package community

import (
	"encoding"
	"fmt"

	"github.com/bureau-foundation/tokenroute/lib/community"
	"github.com/bureau-foundation/tokenroute/lib/config"
)

// Seed loads configured conferences into store. Identifiers go through
// the same parsing as request path segments, so a seeded conference is
// always reachable over HTTP.
func Seed(store *community.Community, conferences []config.ConferenceConfig) error {
	for _, conferenceConfig := range conferences {
		conferenceID, err := parseID[community.ConferenceID](conferenceConfig.ID)
		if err != nil {
			return err
		}
		store.AddConference(conferenceID)

		for range conferenceConfig.Rooms {
			if _, err := store.AddRoom(conferenceID); err != nil {
				return err
			}
		}

		for _, speakerConfig := range conferenceConfig.Speakers {
			speakerID, err := parseID[community.SpeakerID](speakerConfig.ID)
			if err != nil {
				return fmt.Errorf("conference %s: %w", conferenceID, err)
			}
			speaker := community.Speaker{ID: speakerID, Name: speakerConfig.Name}
			if err := store.AddSpeaker(conferenceID, speaker); err != nil {
				return fmt.Errorf("conference %s: %w", conferenceID, err)
			}
		}

		for _, talkConfig := range conferenceConfig.Talks {
			talk, err := buildTalk(talkConfig)
			if err != nil {
				return fmt.Errorf("conference %s: %w", conferenceID, err)
			}
			if err := store.AddTalk(conferenceID, talk); err != nil {
				return fmt.Errorf("conference %s: %w", conferenceID, err)
			}
		}
	}
	return nil
}

func buildTalk(talkConfig config.TalkConfig) (community.Talk, error) {
	talkID, err := parseID[community.TalkID](talkConfig.ID)
	if err != nil {
		return community.Talk{}, err
	}
	talk := community.Talk{ID: talkID, Title: talkConfig.Title}
	if talkConfig.Room != "" {
		if talk.Room, err = parseID[community.RoomID](talkConfig.Room); err != nil {
			return community.Talk{}, err
		}
	}
	for _, speaker := range talkConfig.Speakers {
		speakerID, err := parseID[community.SpeakerID](speaker)
		if err != nil {
			return community.Talk{}, err
		}
		talk.Speakers = append(talk.Speakers, speakerID)
	}
	return talk, nil
}

func parseID[T any, P interface {
	*T
	encoding.TextUnmarshaler
}](text string) (T, error) {
	var id T
	err := P(&id).UnmarshalText([]byte(text))
	return id, err
}
