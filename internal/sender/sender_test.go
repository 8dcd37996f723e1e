package sender

import (
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSend(t *testing.T) {
	t.Parallel()

	t.Run("payload arrives intact", func(t *testing.T) {
		t.Parallel()

		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		defer ln.Close()

		received := make(chan string, 1)
		go func() {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			defer conn.Close()
			data, _ := io.ReadAll(conn)
			received <- string(data)
		}()

		url := "smb://nas.example.com/media/movies/a.mp4"
		require.NoError(t, Send(ln.Addr().String(), url, 2*time.Second))

		select {
		case got := <-received:
			assert.Equal(t, url, got)
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for payload")
		}
	})

	t.Run("connection refused is an error", func(t *testing.T) {
		t.Parallel()

		// Grab a port and close it so nothing is listening there.
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		addr := ln.Addr().String()
		ln.Close()

		err = Send(addr, "smb://nas/media", 500*time.Millisecond)
		assert.Error(t, err)
	})
}
