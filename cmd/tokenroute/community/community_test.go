// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package community

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bureau-foundation/tokenroute/lib/community"
	"github.com/bureau-foundation/tokenroute/lib/config"
	"github.com/bureau-foundation/tokenroute/lib/testutil"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Community.Conferences = []config.ConferenceConfig{{
		ID:    "cppnow2020",
		Rooms: 2,
		Speakers: []config.SpeakerConfig{
			{ID: "326", Name: "Ada"},
			{ID: "327", Name: "Grace"},
		},
		Talks: []config.TalkConfig{
			{ID: "t1", Title: "Routing tokens", Room: "1", Speakers: []string{"326"}},
			{ID: "t2", Title: "Unions", Room: "2", Speakers: []string{"326", "327"}},
		},
	}}
	return cfg
}

func TestSeed(t *testing.T) {
	store := community.New()
	if err := Seed(store, testConfig().Community.Conferences); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	speaker := store.GetSpeaker("cppnow2020", "327")
	if speaker == nil || speaker.Name != "Grace" {
		t.Errorf("GetSpeaker(327) = %+v, want Grace", speaker)
	}
	talks := store.GetRoomTalks("cppnow2020", "2")
	if len(talks) != 1 || talks[0].ID != "t2" {
		t.Errorf("GetRoomTalks(2) = %+v, want [t2]", talks)
	}
	room, err := store.AddRoom("cppnow2020")
	if err != nil || room.ID != "3" {
		t.Errorf("AddRoom after seeding two rooms = %+v, %v; want room 3", room, err)
	}
}

func TestSeedRejects(t *testing.T) {
	tests := []struct {
		name        string
		conferences []config.ConferenceConfig
		want        error
	}{
		{
			name:        "slash in conference id",
			conferences: []config.ConferenceConfig{{ID: "cpp/now"}},
		},
		{
			name: "talk in a room that was never created",
			conferences: []config.ConferenceConfig{{
				ID:    "cppnow2020",
				Talks: []config.TalkConfig{{ID: "t1", Title: "x", Room: "9"}},
			}},
			want: community.ErrUnknownRoom,
		},
		{
			name: "duplicate speaker",
			conferences: []config.ConferenceConfig{{
				ID:       "cppnow2020",
				Speakers: []config.SpeakerConfig{{ID: "1", Name: "a"}, {ID: "1", Name: "b"}},
			}},
			want: community.ErrDuplicate,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := Seed(community.New(), test.conferences)
			if err == nil {
				t.Fatal("Seed succeeded")
			}
			if test.want != nil && !errors.Is(err, test.want) {
				t.Errorf("Seed error = %v, want %v", err, test.want)
			}
		})
	}
}

func TestDispatch(t *testing.T) {
	store, table, err := setup(testConfig())
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	var out bytes.Buffer
	status, err := dispatch(&out, store, table, "get", "/conferences/cppnow2020/speakers/326")
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if status != http.StatusOK {
		t.Errorf("status = %d, want 200", status)
	}
	var speaker community.Speaker
	if err := json.Unmarshal(out.Bytes(), &speaker); err != nil {
		t.Fatalf("decoding %q: %v", out.String(), err)
	}
	if speaker.Name != "Ada" {
		t.Errorf("speaker = %+v, want Ada", speaker)
	}

	out.Reset()
	status, err = dispatch(&out, store, table, "GET", "/conferences/cppnow2020/speakrs/326")
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", status)
	}
	var failure community.ErrorResponse
	if err := json.Unmarshal(out.Bytes(), &failure); err != nil {
		t.Fatalf("decoding %q: %v", out.String(), err)
	}
	if failure.Kind != "invalid_action" || failure.Suggestion != "speakers" || failure.Position != 2 {
		t.Errorf("failure = %+v", failure)
	}
}

func TestServeHandlerMetrics(t *testing.T) {
	logger := testutil.DiscardLogger()
	handler, err := newHandler(testConfig(), prometheus.NewRegistry(), logger)
	if err != nil {
		t.Fatalf("newHandler: %v", err)
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/conferences/cppnow2020/rooms/1/speakers", nil))
	if recorder.Code != http.StatusOK {
		t.Fatalf("speakers status = %d, body %s", recorder.Code, recorder.Body)
	}

	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if recorder.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), `tokenroute_community_dispatches_total{outcome="ok"} 1`) {
		t.Errorf("metrics missing dispatch counter:\n%s", recorder.Body)
	}
}

func TestServeHandlerWithoutMetrics(t *testing.T) {
	cfg := testConfig()
	cfg.Community.MetricsPath = ""
	logger := testutil.DiscardLogger()
	handler, err := newHandler(cfg, prometheus.NewRegistry(), logger)
	if err != nil {
		t.Fatalf("newHandler: %v", err)
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if recorder.Code != http.StatusNotFound {
		t.Errorf("/metrics status = %d, want 404 when metrics are disabled", recorder.Code)
	}
}
