package websocketPkg

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func newInferenceServer(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		for {
			mt, _, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if mt != websocket.BinaryMessage {
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, []byte(reply)); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestProcessFrame_DecodesDetections(t *testing.T) {
	srv := newInferenceServer(t, `{"detections":[{"class_id":5,"label":"Dermi Cool","confidence":0.8,"box":[1,2,30,40]}]}`)
	client := NewWithURL(wsURL(srv), logrus.New())
	defer client.CloseConnections()

	result, err := client.ProcessFrame([]byte{0xff, 0xd8})
	require.NoError(t, err)
	require.True(t, client.IsConnected())

	detections := result.ToEntities()
	require.Len(t, detections, 1)
	require.Equal(t, "Dermi Cool", detections[0].Label)
	require.Equal(t, 5, detections[0].ClassID)
	require.Equal(t, float64(30), detections[0].Box.X2)

	_, err = client.ProcessFrame([]byte{0xff, 0xd8})
	require.NoError(t, err)
}

func TestProcessFrame_ServerError(t *testing.T) {
	srv := newInferenceServer(t, `{"detections":[],"error":"model not loaded"}`)
	client := NewWithURL(wsURL(srv), logrus.New())
	defer client.CloseConnections()

	_, err := client.ProcessFrame([]byte("frame"))
	require.ErrorContains(t, err, "model not loaded")
}

func TestProcessFrame_Unreachable(t *testing.T) {
	client := NewWithURL("ws://127.0.0.1:1/none", logrus.New())

	_, err := client.ProcessFrame([]byte("frame"))
	require.Error(t, err)
	require.False(t, client.IsConnected())
}
