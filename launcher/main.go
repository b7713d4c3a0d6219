package main

import (
	"fmt"
	"log"
	"net"
	"os/exec"
	"path/filepath"
	"time"
)

// Servidor e cliente precisam concordar nestes valores; são os mesmos
// defaults embutidos nos dois binários, passados aqui explicitamente
// para que uma mudança de porta seja um edit só.
const (
	serverPort = "8090"
	serverDB   = "saves/corals.cv"
	serverURL  = "ws://127.0.0.1:" + serverPort + "/ws"
)

func main() {
	fmt.Println("╔══════════════════════════════════════╗")
	fmt.Println("║        CoralVision Launcher          ║")
	fmt.Println("╚══════════════════════════════════════╝")

	// 1. Iniciar o servidor de geração em uma nova janela (os logs de
	// build dos corais aparecem lá).
	fmt.Println("[1/2] Iniciando servidor de geração...")
	serverCmd := exec.Command("cmd", "/c", "start", "CoralVision SERVER",
		"server.exe", "-port", serverPort, "-db", serverDB)
	serverCmd.Dir = "servidor"
	if err := serverCmd.Run(); err != nil {
		log.Fatalf("Erro ao iniciar servidor: %v", err)
	}

	// 2. O servidor só escuta depois de abrir e migrar o banco SQLite,
	// então esperar a porta aceitar conexão em vez de dormir um tempo fixo.
	fmt.Println("Aguardando o servidor abrir o banco e escutar na porta " + serverPort + "...")
	if err := waitForPort("127.0.0.1:"+serverPort, 15*time.Second); err != nil {
		log.Fatalf("Servidor não respondeu: %v", err)
	}

	// 3. Iniciar o cliente silenciosamente (app GUI não precisa de CMD).
	fmt.Println("[2/2] Abrindo visualizador...")

	// Caminho absoluto para garantir que o Windows encontre o arquivo
	absClientPath, err := filepath.Abs("cliente/client.exe")
	if err != nil {
		log.Fatalf("Erro ao resolver caminho do cliente: %v", err)
	}

	clientCmd := exec.Command(absClientPath, "-remote", "-server", serverURL)
	clientCmd.Dir = "cliente" // diretório de trabalho para config.json e exports/

	if err := clientCmd.Start(); err != nil {
		fmt.Printf("ERRO CRÍTICO: Não foi possível executar o cliente em %s\n", absClientPath)
		fmt.Printf("Detalhes: %v\n", err)
		fmt.Println("Pressione Enter para sair...")
		fmt.Scanln()
		return
	}

	fmt.Println("\nSucesso! CoralVision foi iniciado.")
	fmt.Println("O Launcher fechará automaticamente em 2 segundos...")
	time.Sleep(2 * time.Second)
}

// waitForPort tenta conectar no endereço a cada meio segundo até o
// servidor aceitar ou o prazo estourar.
func waitForPort(addr string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		conn, err := net.DialTimeout("tcp", addr, time.Second)
		if err == nil {
			conn.Close()
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("porta %s não abriu em %v", addr, timeout)
		}
		time.Sleep(500 * time.Millisecond)
	}
}
