package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// Cores para o terminal (ANSI)
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorCyan   = "\033[36m"
)

func main() {
	fmt.Println(ColorCyan + "╔══════════════════════════════════════╗" + ColorReset)
	fmt.Println(ColorCyan + "║     CoralVision Native Builder       ║" + ColorReset)
	fmt.Println(ColorCyan + "╚══════════════════════════════════════╝" + ColorReset)

	start := time.Now()

	// 1. Configurar ambiente — os dois binários principais são CGO
	// (go-sqlite3 no servidor, raylib no cliente), então gcc é obrigatório.
	setupEnvironment()

	// 2. Servidor de geração: CGO pelo driver SQLite
	if err := buildComponent("SERVIDOR (CGO: go-sqlite3)", "servidor", "servidor/server.exe", true, "-extldflags=-static -s -w"); err != nil {
		fatal(err)
	}

	// 3. Visualizador: CGO pelo raylib, sem console no Windows
	if err := buildComponent("CLIENTE (CGO: raylib + GUI)", "cliente", "cliente/client.exe", true, "-extldflags=-static -s -w -H=windowsgui"); err != nil {
		fatal(err)
	}

	// 4. Launcher: Go puro, só orquestra os outros dois
	if err := buildComponent("LAUNCHER (Go puro)", "launcher", "CoralVision.exe", false, "-s -w"); err != nil {
		fatal(err)
	}

	// 5. Diretórios que os binários esperam em tempo de execução
	prepareRuntimeDirs()

	fmt.Printf("\n"+ColorCyan+"Build finalizada com sucesso em %v!"+ColorReset+"\n", time.Since(start).Round(time.Second))
	fmt.Println(ColorYellow + "Dica: Execute o 'CoralVision.exe' para começar." + ColorReset)

	fmt.Println("\nPressione Enter para sair...")
	fmt.Scanln()
}

func setupEnvironment() {
	fmt.Println(ColorYellow + "\n[+] Configurando ambiente de compilação..." + ColorReset)

	// Adicionar MSYS2 ao PATH se estiver no Windows
	if runtime.GOOS == "windows" {
		msysPath := `C:\msys64\mingw64\bin`
		currentPath := os.Getenv("PATH")
		if !strings.Contains(currentPath, msysPath) {
			os.Setenv("PATH", msysPath+";"+currentPath)
			fmt.Printf("  - PATH atualizado: %s adicionado.\n", msysPath)
		}
		os.Setenv("CC", "gcc")
		fmt.Println("  - Compilador C: gcc (MSYS2)")
	}

	if _, err := exec.LookPath("gcc"); err != nil {
		fatal(fmt.Errorf("gcc não encontrado no PATH; raylib e go-sqlite3 precisam de CGO (no Windows, instale o MSYS2 mingw64)"))
	}
}

func buildComponent(name, dir, output string, useCgo bool, ldflags string) error {
	fmt.Printf(ColorYellow+"\n[+] Compilando %s..."+ColorReset+"\n", name)

	cgoValue := "0"
	if useCgo {
		cgoValue = "1"
	}
	os.Setenv("CGO_ENABLED", cgoValue)

	args := []string{"build", "-ldflags", ldflags, "-o", output, "./" + dir}
	cmd := exec.Command("go", args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("falha ao compilar %s: %v", name, err)
	}

	fmt.Printf(ColorGreen+"  - %s compilado com sucesso -> %s"+ColorReset+"\n", name, output)
	return nil
}

// prepareRuntimeDirs cria as pastas que servidor e cliente usam ao rodar:
// o banco de corais salvos e o destino dos STLs exportados.
func prepareRuntimeDirs() {
	for _, dir := range []string{
		filepath.Join("servidor", "saves"),
		filepath.Join("cliente", "exports"),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Printf(ColorYellow+"  - Aviso: não criou %s: %v"+ColorReset+"\n", dir, err)
			continue
		}
		fmt.Printf("  - Diretório pronto: %s\n", dir)
	}
}

func fatal(err error) {
	fmt.Printf("\n"+ColorRed+"[ERRO FATAL] %v"+ColorReset+"\n", err)
	fmt.Println("Pressione Enter para sair...")
	fmt.Scanln()
	os.Exit(1)
}
