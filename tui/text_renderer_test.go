package tui

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/pb33f/jobific/motor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextRenderer_RendersPages(t *testing.T) {
	var buf bytes.Buffer
	renderer := NewTextRenderer(&buf, KindCompanies)

	controller := motor.NewController(&staticLoader{records: companyRecords(25)}, renderer, motor.ControllerOptions{
		PageSize: 10,
		Logger:   quietLogger(),
	})
	require.NoError(t, controller.Load(context.Background()))

	out := buf.String()
	assert.Contains(t, out, "1. Company 00 | 서울 강남구\n")
	assert.Contains(t, out, "-- page 1/3 (25 results) --")

	buf.Reset()
	controller.ChangePage(3)
	assert.Contains(t, buf.String(), "21. Company 20 | 경기 성남시\n")
	assert.Contains(t, buf.String(), "-- page 3/3 (25 results) --")
	assert.NoError(t, renderer.Err())
}

func TestTextRenderer_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewTextRenderer(&buf, KindJobs).Render(nil, motor.PageState{CurrentPage: 1})

	assert.Contains(t, buf.String(), "No matching results")
	assert.Contains(t, buf.String(), "page 1/0 (0 results)")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestTextRenderer_KeepsFirstError(t *testing.T) {
	r := NewTextRenderer(failingWriter{}, KindCompanies)
	r.Render(nil, motor.PageState{CurrentPage: 1})
	r.Render(nil, motor.PageState{CurrentPage: 1})
	assert.EqualError(t, r.Err(), "disk full")
}

func TestRenderCurrent(t *testing.T) {
	controller := motor.NewController(&staticLoader{records: companyRecords(3)}, nil, motor.ControllerOptions{Logger: quietLogger()})
	require.NoError(t, controller.Load(context.Background()))

	var buf bytes.Buffer
	require.NoError(t, RenderCurrent(&buf, KindCompanies, controller))
	assert.Contains(t, buf.String(), "3. Company 02 | 경기 성남시")

	assert.Error(t, RenderCurrent(failingWriter{}, KindCompanies, controller))
}
