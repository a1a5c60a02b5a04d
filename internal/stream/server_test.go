package stream_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/plotmod/internal/config"
	"github.com/vk/plotmod/internal/document"
	"github.com/vk/plotmod/internal/property"
	"github.com/vk/plotmod/internal/registry"
	"github.com/vk/plotmod/internal/stream"
)

func val(v cty.Value) *cty.Value { return &v }

func makeDocument(t *testing.T) (*document.Document, *document.Instance) {
	t.Helper()
	r := registry.New()
	_, err := r.Build(&config.ClassDefinition{
		Name: "marker",
		Attrs: []*config.AttrDefinition{
			{Name: "location", Type: property.CoordinateType, Default: val(property.FrameLeft)},
			{Name: "width", Type: property.NumberType, Default: val(cty.NumberIntVal(1))},
		},
	})
	require.NoError(t, err)

	doc := document.NewDocument(r)
	class, ok := r.Class("marker")
	require.True(t, ok)
	in, err := doc.New(class, nil)
	require.NoError(t, err)
	return doc, in
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	wc, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { wc.Close() })
	return wc
}

func readMessage(t *testing.T, wc *websocket.Conn) []byte {
	t.Helper()
	require.NoError(t, wc.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, msg, err := wc.ReadMessage()
	require.NoError(t, err)
	return msg
}

func TestHandler_SnapshotOnConnect(t *testing.T) {
	t.Parallel()

	doc, root := makeDocument(t)
	srv := httptest.NewServer(stream.New(doc, []*document.Instance{root}).Handler(context.Background()))
	defer srv.Close()

	wc := dial(t, srv)
	msg := readMessage(t, wc)

	var snapshot struct {
		Version   int      `json:"version"`
		Roots     []string `json:"roots"`
		Instances []struct {
			ID    string `json:"id"`
			Class string `json:"class"`
		} `json:"instances"`
	}
	require.NoError(t, json.Unmarshal(msg, &snapshot))
	assert.Equal(t, 1, snapshot.Version)
	assert.Equal(t, []string{root.ID()}, snapshot.Roots)
	require.Len(t, snapshot.Instances, 1)
	assert.Equal(t, "marker", snapshot.Instances[0].Class)
}

func TestHandler_StreamsChangeEvents(t *testing.T) {
	t.Parallel()

	doc, root := makeDocument(t)
	srv := httptest.NewServer(stream.New(doc, []*document.Instance{root}).Handler(context.Background()))
	defer srv.Close()

	wc := dial(t, srv)
	readMessage(t, wc) // snapshot

	require.NoError(t, root.Set("width", cty.NumberIntVal(9)))

	var change struct {
		Kind string          `json:"kind"`
		ID   string          `json:"id"`
		Attr string          `json:"attr"`
		Old  json.RawMessage `json:"old"`
		New  json.RawMessage `json:"new"`
	}
	require.NoError(t, json.Unmarshal(readMessage(t, wc), &change))
	assert.Equal(t, "change", change.Kind)
	assert.Equal(t, root.ID(), change.ID)
	assert.Equal(t, "width", change.Attr)
	assert.JSONEq(t, "1", string(change.Old))
	assert.JSONEq(t, "9", string(change.New))
}

func TestHandler_SymbolValuesOnTheWire(t *testing.T) {
	t.Parallel()

	doc, root := makeDocument(t)
	srv := httptest.NewServer(stream.New(doc, []*document.Instance{root}).Handler(context.Background()))
	defer srv.Close()

	wc := dial(t, srv)
	readMessage(t, wc)

	require.NoError(t, root.Set("location", cty.NumberFloatVal(4.5)))
	var got struct {
		Attr string          `json:"attr"`
		Old  json.RawMessage `json:"old"`
		New  json.RawMessage `json:"new"`
	}
	require.NoError(t, json.Unmarshal(readMessage(t, wc), &got))
	assert.Equal(t, "location", got.Attr)
	assert.JSONEq(t, `{"symbol": "frame.left"}`, string(got.Old))
	assert.JSONEq(t, "4.5", string(got.New))
}

func TestHandler_RejectsPlainHTTP(t *testing.T) {
	t.Parallel()

	doc, root := makeDocument(t)
	srv := httptest.NewServer(stream.New(doc, []*document.Instance{root}).Handler(context.Background()))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandler_MultipleClients(t *testing.T) {
	t.Parallel()

	doc, root := makeDocument(t)
	srv := httptest.NewServer(stream.New(doc, []*document.Instance{root}).Handler(context.Background()))
	defer srv.Close()

	a := dial(t, srv)
	b := dial(t, srv)
	readMessage(t, a)
	readMessage(t, b)

	require.NoError(t, root.Set("width", cty.NumberIntVal(2)))

	for _, wc := range []*websocket.Conn{a, b} {
		var change struct {
			Kind string `json:"kind"`
			Attr string `json:"attr"`
		}
		require.NoError(t, json.Unmarshal(readMessage(t, wc), &change))
		assert.Equal(t, "change", change.Kind)
		assert.Equal(t, "width", change.Attr)
	}
}
