package client

import (
	"log"
	"sync"
	"time"

	"CoralVision/shared/proto/cvnet"

	"github.com/gorilla/websocket"
)

// NetworkClient lida com a comunicação com o Servidor CoralVision
type NetworkClient struct {
	conn      *websocket.Conn
	url       string
	connected bool
	mu        sync.RWMutex

	// Callbacks para o App
	OnMesh   func(result *cvnet.MeshResult)
	OnStatus func(msg string, busy bool, meshesSaved int64)
	OnError  func(requestID int32, reason string)
}

func NewNetworkClient(url string) *NetworkClient {
	return &NetworkClient{url: url}
}

func (c *NetworkClient) Connect() error {
	dialer := websocket.Dialer{
		HandshakeTimeout: 5 * time.Second,
	}

	var err error
	maxRetries := 10
	for i := 0; i < maxRetries; i++ {
		log.Printf("[Network] Tentativa de conexão %d/%d em %s...", i+1, maxRetries, c.url)
		c.conn, _, err = dialer.Dial(c.url, nil)
		if err == nil {
			break
		}
		log.Printf("[Network] Servidor ainda não está pronto: %v. Aguardando...", err)
		time.Sleep(2 * time.Second)
	}

	if err != nil {
		log.Printf("[Network] ERRO CRÍTICO após %d tentativas: %v", maxRetries, err)
		return err
	}

	c.mu.Lock()
	c.connected = true
	c.mu.Unlock()

	go c.readLoop()
	return nil
}

func (c *NetworkClient) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// RequestGenerate pede ao servidor a construção de um coral com os parâmetros dados.
func (c *NetworkClient) RequestGenerate(requestID int32, paramsJSON []byte, persist bool) {
	req := &cvnet.GenerateRequest{
		RequestID:  requestID,
		ParamsJSON: paramsJSON,
		Persist:    persist,
	}
	c.Send(cvnet.Envelope_GENERATE, req)
}

func (c *NetworkClient) Send(msgType int32, msg interface{ Marshal() []byte }) {
	if !c.IsConnected() {
		return
	}

	var payload []byte
	if msg != nil {
		payload = msg.Marshal()
	}

	env := &cvnet.Envelope{
		Type:    msgType,
		Payload: payload,
	}

	c.mu.Lock()
	err := c.conn.WriteMessage(websocket.BinaryMessage, env.Marshal())
	c.mu.Unlock()

	if err != nil {
		log.Printf("[Network] Erro ao enviar mensagem: %v", err)
		c.mu.Lock()
		c.connected = false
		c.mu.Unlock()
	}
}

func (c *NetworkClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.connected = false
	if c.conn != nil {
		c.conn.Close()
	}
}

func (c *NetworkClient) readLoop() {
	defer func() {
		c.mu.Lock()
		c.connected = false
		c.mu.Unlock()
		if c.conn != nil {
			c.conn.Close()
		}
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			log.Printf("[Network] Conexão perdida: %v", err)
			break
		}

		var env cvnet.Envelope
		if err := env.Unmarshal(message); err != nil {
			log.Printf("[Network] Erro ao desempacotar envelope: %v", err)
			continue
		}

		c.handleMessage(&env)
	}
}

func (c *NetworkClient) handleMessage(env *cvnet.Envelope) {
	switch env.Type {
	case cvnet.Envelope_SERVER_STATUS:
		var status cvnet.ServerStatus
		if err := status.Unmarshal(env.Payload); err == nil {
			if c.OnStatus != nil {
				c.OnStatus(status.Message, status.Busy, status.MeshesSaved)
			}
		}
	case cvnet.Envelope_MESH_RESULT:
		var result cvnet.MeshResult
		if err := result.Unmarshal(env.Payload); err != nil {
			log.Printf("[Network] Malha corrompida: %v", err)
			return
		}
		log.Printf("[Network] Malha recebida: %s seed=%d (%d triângulos)",
			result.Algorithm, result.Seed, len(result.Indices)/3)
		if c.OnMesh != nil {
			c.OnMesh(&result)
		}
	case cvnet.Envelope_GENERATE_ERROR:
		var genErr cvnet.GenerateError
		if err := genErr.Unmarshal(env.Payload); err == nil {
			log.Printf("[Network] Servidor recusou pedido %d: %s", genErr.RequestID, genErr.Reason)
			if c.OnError != nil {
				c.OnError(genErr.RequestID, genErr.Reason)
			}
		}
	default:
		log.Printf("[Network] Mensagem de tipo desconhecido: %d", env.Type)
	}
}
