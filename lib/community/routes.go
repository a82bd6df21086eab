// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package community

import (
	"strings"

	"github.com/bureau-foundation/tokenroute/lib/router"
)

// Routes builds the API's routing table.
func Routes() *router.Selector {
	return router.Select(
		router.On("conferences", router.Arg[ConferenceID](
			router.On("speakers", router.Arg[SpeakerID](
				router.On("GET", (*Community).GetSpeaker),
			)),
			router.On("talks", router.Arg[TalkID](
				router.On("DELETE", (*Community).RemoveTalk),
			)),
			router.On("rooms", router.Select(
				router.On("POST", (*Community).AddRoom),
				router.Arg[RoomID](
					router.On("talks", router.Select(router.On("GET", (*Community).GetRoomTalks))),
					router.On("speakers", router.Select(router.On("GET", (*Community).GetRoomSpeakers))),
				),
			)),
		)),
	)
}

// NewRouter validates [Routes] against *Community.
func NewRouter() (*router.Router[*Community], error) {
	return router.New[*Community](Routes())
}

// Request is an HTTP-like request: a method and a path split into
// segments.
type Request struct {
	Method string
	Path   []string
}

// ParseRequest splits path on "/" and drops empty segments.
func ParseRequest(method, path string) Request {
	var segments []string
	for _, segment := range strings.Split(path, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	return Request{Method: method, Path: segments}
}

// Tokens returns the path segments followed by the method.
func (r Request) Tokens() []string {
	tokens := make([]string, 0, len(r.Path)+1)
	tokens = append(tokens, r.Path...)
	return append(tokens, r.Method)
}
