package api

import (
	"context"
	"io"

	"github.com/diogo/rpchat/internal/models"
)

// MockStreamer is a mock implementation of ChatStreamer for testing
type MockStreamer struct {
	// Mock return values
	Fragments []string
	RecvErr   error // returned after all fragments instead of io.EOF
	OpenErr   error
	// OpenHook runs inside StreamChat before it returns
	OpenHook func(ctx context.Context)

	// Call counters/recorders
	Calls        int
	LastModel    string
	LastMessages []models.Message
	Streams      []*MockStream
}

// Ensure MockStreamer implements ChatStreamer
var _ ChatStreamer = (*MockStreamer)(nil)

func (m *MockStreamer) StreamChat(ctx context.Context, model string, messages []models.Message) (Stream, error) {
	m.Calls++
	m.LastModel = model
	m.LastMessages = messages
	if m.OpenHook != nil {
		m.OpenHook(ctx)
	}
	if m.OpenErr != nil {
		return nil, m.OpenErr
	}
	s := &MockStream{Fragments: append([]string(nil), m.Fragments...), Err: m.RecvErr}
	m.Streams = append(m.Streams, s)
	return s, nil
}

// MockStream replays a fixed list of fragments
type MockStream struct {
	Fragments []string
	Err       error
	Closed    bool
	pos       int
}

func (s *MockStream) Recv() (string, error) {
	if s.pos < len(s.Fragments) {
		f := s.Fragments[s.pos]
		s.pos++
		return f, nil
	}
	if s.Err != nil {
		return "", s.Err
	}
	return "", io.EOF
}

func (s *MockStream) Close() error {
	s.Closed = true
	return nil
}
