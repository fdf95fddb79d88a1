// Package websocket pushes solver results to browsers and other listeners.
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each connection subscribes to exactly one channel
// when it is opened:
//
//   - a run ID, to hear about that run (for example its deletion)
//   - "puzzle:<name>", to receive every run solved on that puzzle
//
// Outgoing messages are JSON objects:
//
//	{"channel": "puzzle:beginner", "event": "run_completed", "run": {...}}
//
// Incoming messages are read only to keep the connection alive.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("run"))
//	})
package websocket
