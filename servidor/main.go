package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"CoralVision/shared/coral"
	"CoralVision/shared/mesh"
	"CoralVision/shared/proto/cvnet"
	"CoralVision/shared/store"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub gerencia as conexões WebSocket ativas
type Hub struct {
	clients    map[*websocket.Conn]*sync.Mutex
	broadcast  chan []byte
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	mu         sync.Mutex

	busyMu sync.Mutex
	busy   int // gerações em andamento
}

func newHub() *Hub {
	return &Hub{
		clients:    make(map[*websocket.Conn]*sync.Mutex),
		broadcast:  make(chan []byte, 256), // Bufferizado para evitar deadlocks e bloqueios
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
	}
}

func (h *Hub) run() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Hub] Recuperado de pânico fatal: %v", r)
		}
	}()

	for {
		select {
		case client, ok := <-h.register:
			if !ok {
				return
			}
			h.mu.Lock()
			h.clients[client] = &sync.Mutex{}
			h.mu.Unlock()
			log.Printf("Cliente registrado: %s", client.RemoteAddr())
		case client, ok := <-h.unregister:
			if !ok {
				return
			}
			h.mu.Lock()
			if lock, ok := h.clients[client]; ok {
				lock.Lock()
				delete(h.clients, client)
				client.Close()
				lock.Unlock()
				log.Printf("Cliente desregistrado: %s", client.RemoteAddr())
			}
			h.mu.Unlock()
		case message, ok := <-h.broadcast:
			if !ok {
				return
			}
			h.mu.Lock()
			// Criamos uma lista de clientes para iterar fora do lock do hub
			type clientEntry struct {
				conn *websocket.Conn
				lock *sync.Mutex
			}
			var targets []clientEntry
			for c, l := range h.clients {
				targets = append(targets, clientEntry{c, l})
			}
			h.mu.Unlock()

			for _, target := range targets {
				target.lock.Lock()
				err := target.conn.WriteMessage(websocket.BinaryMessage, message)
				if err != nil {
					log.Printf("Erro ao enviar para cliente %s: %v", target.conn.RemoteAddr(), err)
					target.conn.Close()
					h.mu.Lock()
					delete(h.clients, target.conn)
					h.mu.Unlock()
				}
				target.lock.Unlock()
			}
		}
	}
}

// WriteSafe garante que apenas uma goroutine escreva no WebSocket por vez
func (h *Hub) WriteSafe(conn *websocket.Conn, messageType int, data []byte) error {
	h.mu.Lock()
	lock, ok := h.clients[conn]
	h.mu.Unlock()

	if !ok {
		return fmt.Errorf("cliente não encontrado no hub")
	}

	lock.Lock()
	defer lock.Unlock()
	return conn.WriteMessage(messageType, data)
}

// safeSend envia para o canal de broadcast protegendo contra pânicos de canal fechado
func (h *Hub) safeSend(data []byte) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Hub] Aviso: Falha ao enviar broadcast (canal fechado?): %v", r)
		}
	}()
	// IMPORTANTE: Não segurar h.mu.Lock() aqui, pois o h.broadcast <- data pode bloquear
	// se o buffer estiver cheio, e o run() precisaria do lock para esvaziar o buffer.
	h.broadcast <- data
}

// SendMessage serializa a mensagem dentro de um envelope e envia para um cliente específico.
func (h *Hub) SendMessage(conn *websocket.Conn, msgType int32, msg interface{ Marshal() []byte }) {
	var payload []byte
	if msg != nil {
		payload = msg.Marshal()
	}
	envelope := &cvnet.Envelope{Type: msgType, Payload: payload}
	if err := h.WriteSafe(conn, websocket.BinaryMessage, envelope.Marshal()); err != nil {
		log.Printf("Erro ao enviar mensagem tipo %d: %v", msgType, err)
	}
}

// BroadcastStatus envia o estado atual do servidor para todos os clientes.
func (h *Hub) BroadcastStatus(message string, meshesSaved int64) {
	h.busyMu.Lock()
	busy := h.busy > 0
	h.busyMu.Unlock()

	status := &cvnet.ServerStatus{
		Message:     message,
		Busy:        busy,
		MeshesSaved: meshesSaved,
	}
	envelope := &cvnet.Envelope{
		Type:    cvnet.Envelope_SERVER_STATUS,
		Payload: status.Marshal(),
	}
	h.safeSend(envelope.Marshal())
}

func (h *Hub) enterBuild() {
	h.busyMu.Lock()
	h.busy++
	h.busyMu.Unlock()
}

func (h *Hub) leaveBuild() {
	h.busyMu.Lock()
	h.busy--
	h.busyMu.Unlock()
}

func main() {
	// Garante que o working directory é o mesmo diretório do executável,
	// para que caminhos relativos (saves/, tmp/) funcionem corretamente.
	if exePath, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exePath)
		os.Chdir(exeDir)
	}

	port := flag.String("port", "8090", "porta do servidor WebSocket")
	dbPath := flag.String("db", "saves/corals.cv", "caminho do banco SQLite")
	flag.Parse()

	log.SetFlags(log.Ltime | log.Lshortfile)

	// Configurar Log em Arquivo para depuração de crash
	if err := os.MkdirAll("tmp", 0755); err == nil {
		logFile, err := os.OpenFile("tmp/server.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err == nil {
			// MultiWriter para logar no console e no arquivo simultaneamente
			mw := io.MultiWriter(os.Stdout, logFile)
			log.SetOutput(mw)
		}
	}
	log.Println("╔══════════════════════════════════════╗")
	log.Println("║      CoralVision SERVER v0.1.0       ║")
	log.Println("╚══════════════════════════════════════╝")

	hub := newHub()
	go hub.run()

	db, err := store.Open(*dbPath)
	if err != nil {
		log.Fatalf("Erro fatal ao abrir banco: %v", err)
	}
	defer db.Close()

	if count, err := db.CountMeshes(); err == nil {
		log.Printf("[Startup] Banco com %d malhas persistidas", count)
	}

	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		serveWs(hub, w, r, db)
	})

	if p := os.Getenv("PORT"); p != "" {
		*port = p
	}

	// Iniciar Servidor HTTP/WebSocket com verificação de porta
	addr := "127.0.0.1:" + *port
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Printf("ERRO CRÍTICO: Não foi possível abrir a porta %s.", *port)
		log.Printf("Provavelmente há outra instância do servidor rodando.")
		log.Fatalf("Erro ao iniciar servidor: %v", err)
	}
	ln.Close() // Fecha para o ListenAndServe reabrir

	log.Printf("Servidor CoralVision iniciado em %s", addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatalf("Erro fatal no servidor HTTP: %v", err)
	}
}

// serveWs maneja requisições websocket do peer.
func serveWs(hub *Hub, w http.ResponseWriter, r *http.Request, db *store.Store) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Erro no upgrade do WebSocket: %v", err)
		return
	}
	hub.register <- conn

	// Enviar status inicial
	saved, _ := db.CountMeshes()
	hub.SendMessage(conn, cvnet.Envelope_SERVER_STATUS, &cvnet.ServerStatus{
		Message:     "Conectado ao Servidor CoralVision",
		MeshesSaved: saved,
	})

	go func() {
		defer func() {
			hub.unregister <- conn
		}()

		for {
			_, message, err := conn.ReadMessage()
			if err != nil {
				log.Printf("Erro ao ler mensagem: %v", err)
				break
			}

			// Decodificar Envelope
			var envelope cvnet.Envelope
			if err := envelope.Unmarshal(message); err != nil {
				log.Printf("Erro ao desempacotar envelope: %v", err)
				continue
			}

			handleClientMessage(hub, conn, db, &envelope)
		}
	}()
}

func handleClientMessage(hub *Hub, conn *websocket.Conn, db *store.Store, env *cvnet.Envelope) {
	switch env.Type {
	case cvnet.Envelope_GENERATE:
		var req cvnet.GenerateRequest
		if err := req.Unmarshal(env.Payload); err != nil {
			log.Printf("Erro ao ler GenerateRequest: %v", err)
			return
		}
		go buildForClient(hub, conn, db, &req)
	default:
		log.Printf("[Network] Mensagem de tipo desconhecido: %d", env.Type)
	}
}

// buildForClient roda o pipeline completo e devolve a malha ao cliente.
func buildForClient(hub *Hub, conn *websocket.Conn, db *store.Store, req *cvnet.GenerateRequest) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Build] Recuperado de pânico: %v", r)
			hub.SendMessage(conn, cvnet.Envelope_GENERATE_ERROR, &cvnet.GenerateError{
				RequestID: req.RequestID,
				Reason:    fmt.Sprintf("pânico interno: %v", r),
			})
		}
	}()

	params := coral.DefaultParams()
	if len(req.ParamsJSON) > 0 {
		if err := json.Unmarshal(req.ParamsJSON, &params); err != nil {
			hub.SendMessage(conn, cvnet.Envelope_GENERATE_ERROR, &cvnet.GenerateError{
				RequestID: req.RequestID,
				Reason:    fmt.Sprintf("parâmetros inválidos: %v", err),
			})
			return
		}
	}

	hub.enterBuild()
	hub.BroadcastStatus(fmt.Sprintf("gerando coral %s seed=%d", params.Algorithm, params.Seed()), -1)
	m, info, err := coral.Build(params)
	hub.leaveBuild()

	if err != nil {
		hub.SendMessage(conn, cvnet.Envelope_GENERATE_ERROR, &cvnet.GenerateError{
			RequestID: req.RequestID,
			Reason:    err.Error(),
		})
		return
	}
	if m == nil {
		hub.SendMessage(conn, cvnet.Envelope_GENERATE_ERROR, &cvnet.GenerateError{
			RequestID: req.RequestID,
			Reason:    "geração produziu malha vazia",
		})
		return
	}

	if req.Persist {
		if err := db.SaveMesh(m, info); err != nil {
			log.Printf("[Build] Falha ao persistir malha: %v", err)
		}
	}

	result := meshToResult(m, info)
	result.RequestID = req.RequestID
	hub.SendMessage(conn, cvnet.Envelope_MESH_RESULT, result)

	saved, _ := db.CountMeshes()
	hub.BroadcastStatus(fmt.Sprintf("coral %s seed=%d pronto (%d triângulos)",
		info.Algorithm, info.Seed, info.Triangles), saved)
}

// meshToResult achata os vetores da malha para o formato de rede.
func meshToResult(m *mesh.Mesh, info coral.BuildInfo) *cvnet.MeshResult {
	result := &cvnet.MeshResult{
		Algorithm:   info.Algorithm,
		Seed:        info.Seed,
		Positions:   make([]float32, 0, len(m.Positions)*3),
		Normals:     make([]float32, 0, len(m.Normals)*3),
		Indices:     m.Indices,
		BuildMillis: info.Duration.Milliseconds(),
	}
	for _, p := range m.Positions {
		result.Positions = append(result.Positions, p.X(), p.Y(), p.Z())
	}
	for _, n := range m.Normals {
		result.Normals = append(result.Normals, n.X(), n.Y(), n.Z())
	}
	return result
}
