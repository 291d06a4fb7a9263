package core

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToInt(t *testing.T) {
	tests := []struct {
		input   any
		want    int64
		wantErr bool
	}{
		{input: 5, want: 5},
		{input: int32(6), want: 6},
		{input: int64(7), want: 7},
		{input: float64(8), want: 8},
		{input: json.Number("9"), want: 9},
		{input: "10", want: 10},
		{input: "abc", wantErr: true},
		{input: []int{1}, wantErr: true},
	}
	for _, tt := range tests {
		got, err := toInt(tt.input)
		if tt.wantErr {
			assert.Error(t, err, "%v", tt.input)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestToBool(t *testing.T) {
	for _, truthy := range []any{true, "true", "1", "Yes", 1, float64(2), json.Number("1")} {
		got, err := toBool(truthy)
		require.NoError(t, err)
		assert.True(t, got, "%v", truthy)
	}
	for _, falsy := range []any{false, "false", "0", "", 0, float64(0)} {
		got, err := toBool(falsy)
		require.NoError(t, err)
		assert.False(t, got, "%v", falsy)
	}
	_, err := toBool("maybe")
	assert.Error(t, err)
	_, err = toBool([]int{})
	assert.Error(t, err)
}

func TestBuildResourcePathWithID(t *testing.T) {
	seven := 7
	tests := []struct {
		name     string
		path     string
		id       any
		segments []string
		want     string
	}{
		{name: "int", path: "/articles", id: 7, want: "/articles/7"},
		{name: "int pointer", path: "/articles", id: &seven, want: "/articles/7"},
		{name: "trims slashes", path: "/articles/", id: "7", segments: []string{"/toggle-publish/"}, want: "/articles/7/toggle-publish"},
		{name: "string id", path: "/articles", id: "a1b2", want: "/articles/a1b2"},
		{name: "leading zeros kept", path: "/articles", id: "007", want: "/articles/007"},
		{name: "sign kept", path: "/articles", id: "+5", want: "/articles/+5"},
		{name: "escaped", path: "/articles/type", id: "news letter", want: "/articles/type/news%20letter"},
		{name: "slash escaped", path: "/articles", id: "a/b", want: "/articles/a%2Fb"},
		{name: "whole float", path: "/instrument/delete", id: float64(3), want: "/instrument/delete/3"},
		{name: "json number", path: "/messages", id: json.Number("12"), segments: []string{"read"}, want: "/messages/12/read"},
		{name: "uint", path: "/services", id: uint(4), want: "/services/4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildResourcePathWithID(tt.path, tt.id, tt.segments...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildResourcePathWithID_RejectsEmptyIds(t *testing.T) {
	var nilPointer *int
	for _, id := range []any{nil, "", "  ", nilPointer, 2.5} {
		_, err := BuildResourcePathWithID("/articles", id)
		assert.Error(t, err, "id %#v", id)
	}
	_, err := BuildResourcePathWithID("/articles", "")
	assert.ErrorIs(t, err, ErrEmptyID)
}

func TestParseJSONTag(t *testing.T) {
	name, omit := parseJSONTag("title,omitempty")
	assert.Equal(t, "title", name)
	assert.True(t, omit)

	name, omit = parseJSONTag("-")
	assert.Equal(t, "-", name)
	assert.False(t, omit)

	name, _ = parseJSONTag("")
	assert.Empty(t, name)
}

func TestMust(t *testing.T) {
	assert.Equal(t, 3, must(3, nil))
	assert.Panics(t, func() { must(0, assert.AnError) })
}

func TestKeyLocker(t *testing.T) {
	locker := NewKeyLocker()

	t.Run("same key is exclusive", func(t *testing.T) {
		var (
			mu      sync.Mutex
			active  int
			maxSeen int
			wg      sync.WaitGroup
		)
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				unlock := locker.Lock("article", 1)
				defer unlock()
				mu.Lock()
				active++
				if active > maxSeen {
					maxSeen = active
				}
				mu.Unlock()
				time.Sleep(time.Millisecond)
				mu.Lock()
				active--
				mu.Unlock()
			}()
		}
		wg.Wait()
		assert.Equal(t, 1, maxSeen)
		assert.False(t, locker.held("article", 1))
	})

	t.Run("different keys do not block", func(t *testing.T) {
		unlockA := locker.Lock("article", 1)
		defer unlockA()

		done := make(chan struct{})
		go func() {
			unlockB := locker.Lock("article", 2)
			unlockB()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("lock on a different key blocked")
		}
	})
}
