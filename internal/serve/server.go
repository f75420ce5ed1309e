// Package serve streams simulation frames to browser clients over
// WebSocket and accepts runtime control messages back.
package serve

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/san-kum/hairsim/internal/compute"
	"github.com/san-kum/hairsim/internal/config"
	"github.com/san-kum/hairsim/internal/engine"
	"github.com/san-kum/hairsim/internal/hair"
	"github.com/san-kum/hairsim/internal/metrics"
	"github.com/san-kum/hairsim/internal/scene"
)

type FrameData struct {
	Type    string         `json:"type"`
	Time    float64        `json:"time"`
	Step    int            `json:"step"`
	Strands [][][3]float64 `json:"strands"`
	Strain  float64        `json:"strain"`
	Energy  float64        `json:"energy"`
	Running bool           `json:"running"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

type Server struct {
	cfg *config.Config

	simMu sync.Mutex
	sim   *engine.Sim
	sc    *scene.Scene

	running bool
	swayOn  bool

	clientsMu sync.RWMutex
	clients   map[*websocket.Conn]*sync.Mutex
}

func New(cfg *config.Config) (*Server, error) {
	sc := scene.FromConfig(cfg)
	sim, err := engine.New(sc.Strands, sc.Initial, cfg.Params())
	if err != nil {
		return nil, err
	}
	sim.SetBackend(compute.ByName(cfg.Backend))

	return &Server{
		cfg:     cfg,
		sim:     sim,
		sc:      sc,
		running: true,
		swayOn:  cfg.Sway.Amplitude != 0,
		clients: make(map[*websocket.Conn]*sync.Mutex),
	}, nil
}

// ListenAndServe starts the frame loop and blocks serving HTTP on
// addr.
func (s *Server) ListenAndServe(addr string) error {
	go s.frameLoop()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)

	log.Printf("serving frames on ws://%s/ws", addr)
	return http.ListenAndServe(addr, mux)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	connMutex := &sync.Mutex{}
	s.clientsMu.Lock()
	s.clients[conn] = connMutex
	s.clientsMu.Unlock()
	defer func() {
		s.clientsMu.Lock()
		delete(s.clients, conn)
		s.clientsMu.Unlock()
	}()

	s.sendFrame(conn)

	// Control messages: pause/resume and live parameter changes.
	for {
		var msg map[string]interface{}
		if err := conn.ReadJSON(&msg); err != nil {
			log.Println("WebSocket read error:", err)
			break
		}
		s.applyControls(msg)
	}
}

func (s *Server) applyControls(msg map[string]interface{}) {
	s.simMu.Lock()
	defer s.simMu.Unlock()

	if running, ok := msg["running"].(bool); ok {
		s.running = running
	}
	if amp, ok := msg["swayAmplitude"].(float64); ok {
		s.sc.Sway.Amplitude = amp
		s.swayOn = amp != 0
	}
	if stiffness, ok := msg["stiffness"].(float64); ok {
		par := s.sim.Params()
		par.Stiffness = stiffness
		s.sim.SetParams(par)
	}
	if damping, ok := msg["damping"].(float64); ok {
		par := s.sim.Params()
		par.Damping = damping
		s.sim.SetParams(par)
	}
}

func (s *Server) frameLoop() {
	interval := time.Second / time.Duration(config.DefaultFPS)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		s.simMu.Lock()
		if s.running {
			steps := 1
			if dt := s.sim.Params().Dt; dt > 0 {
				steps = int(interval.Seconds() / dt)
				if steps < 1 {
					steps = 1
				}
			}
			for i := 0; i < steps; i++ {
				if s.swayOn {
					s.sim.SetAnchors(s.sc.AnchorsAt(s.sim.Time()))
				}
				s.sim.Step()
			}
			if !s.sim.State().Finite(s.sim.Strands()) {
				log.Println("state diverged, pausing")
				s.running = false
			}
		}
		frame := s.buildFrame()
		s.simMu.Unlock()

		s.broadcast(frame)
	}
}

func (s *Server) sendFrame(conn *websocket.Conn) {
	s.clientsMu.RLock()
	mutex, ok := s.clients[conn]
	s.clientsMu.RUnlock()
	if !ok {
		return
	}

	s.simMu.Lock()
	frame := s.buildFrame()
	s.simMu.Unlock()

	mutex.Lock()
	conn.WriteJSON(frame)
	mutex.Unlock()
}

func (s *Server) broadcast(frame FrameData) {
	s.clientsMu.RLock()
	var failed []*websocket.Conn
	for client, mutex := range s.clients {
		mutex.Lock()
		err := client.WriteJSON(frame)
		mutex.Unlock()
		if err != nil {
			log.Println("WebSocket write error:", err)
			client.Close()
			failed = append(failed, client)
		}
	}
	s.clientsMu.RUnlock()

	if len(failed) > 0 {
		s.clientsMu.Lock()
		for _, client := range failed {
			delete(s.clients, client)
		}
		s.clientsMu.Unlock()
	}
}

// buildFrame snapshots the active points. Callers hold simMu.
func (s *Server) buildFrame() FrameData {
	state := s.sim.State()
	strands := s.sim.Strands()
	par := s.sim.Params()

	out := make([][][3]float64, len(strands))
	for i, strand := range strands {
		line := make([][3]float64, 0, strand.Length+1)
		line = append(line, [3]float64{strand.Anchor.X, strand.Anchor.Y, strand.Anchor.Z})
		for p := 0; p < strand.Length; p++ {
			pos := state.Pos[hair.Index(i, p)]
			line = append(line, [3]float64{pos.X, pos.Y, pos.Z})
		}
		out[i] = line
	}

	return FrameData{
		Type:    "frame",
		Time:    s.sim.Time(),
		Step:    s.sim.Steps(),
		Strands: out,
		Strain:  metrics.MeanStrain(state, strands, par.RestLength),
		Energy:  metrics.TotalEnergy(state, strands, par),
		Running: s.running,
	}
}
