package mobile

import (
	"log"
	"net"

	httpserver "kniazhych/internal/server/http"
)

// StartServer starts the local HTTP server for a gomobile host.
// webDir: physical path to the extracted web assets
// port: port to listen on, e.g. "2888"
func StartServer(webDir string, port string) {
	srv := httpserver.NewServer(webDir, "")
	addr := net.JoinHostPort("127.0.0.1", port)

	// Run in background so it doesn't block the Android UI thread
	go func() {
		if err := srv.Listen(addr); err != nil {
			log.Printf("Server Error: %v", err)
		}
	}()
}
