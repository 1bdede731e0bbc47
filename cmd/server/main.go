package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"log"
	"os"

	"gridcaster/internal/game"
	"gridcaster/internal/maps"
	"gridcaster/internal/render"
	"gridcaster/internal/server"
	"gridcaster/internal/stream"
)

const (
	defaultAddr     = ":2222"
	defaultHTTPPort = "8080"
	hostKeyPath     = "host_key"
	defaultMapsDir  = "assets/maps"
	defaultMapName  = "Default"
)

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)

	// Generate host key if it doesn't exist
	if err := ensureHostKey(hostKeyPath); err != nil {
		log.Fatalf("Host key error: %v", err)
	}

	store, err := openStore()
	if err != nil {
		log.Fatalf("Failed to initialize map storage: %v", err)
	}
	defer store.Close()

	allMaps, err := maps.LoadAll(store)
	if err != nil || len(allMaps) == 0 {
		log.Printf("No maps loaded (%v), using the built-in default map", err)
		dm := maps.DefaultMap()
		allMaps = map[string]*maps.Map{dm.Name: dm}
	}
	for name, m := range allMaps {
		counts := m.WallCounts()
		log.Printf("Map loaded: %s (%dx%d, %d open tiles)", name, m.Width, m.Height, counts[maps.Floor])
	}

	defaultMap := getenv("DEFAULT_MAP", defaultMapName)
	world := game.NewWorld(allMaps, defaultMap)
	if world.DefaultMap != defaultMap {
		log.Printf("Map %q not found, spawning players on %q", defaultMap, world.DefaultMap)
	}

	gameLoop := game.NewGameLoop(world, game.DefaultMovement())
	go gameLoop.Run()
	defer gameLoop.Stop()

	scene := render.NewScene()

	if httpPort := getenv("HTTP_PORT", defaultHTTPPort); httpPort != "off" {
		viewer := stream.NewServer(gameLoop, scene, stream.DefaultWidth, stream.DefaultHeight)
		go func() {
			if err := viewer.ListenAndServe(":" + httpPort); err != nil {
				log.Printf("WebSocket viewer stopped: %v", err)
			}
		}()
	}

	// Start SSH server (blocks)
	listenAddr := defaultAddr
	if port := os.Getenv("PORT"); port != "" {
		listenAddr = ":" + port
	}
	sshServer := server.NewSSHServer(listenAddr, hostKeyPath, gameLoop, scene)
	log.Printf("Starting gridcaster. Connect with: ssh -t -p %s YourName@localhost", listenAddr[1:])
	if err := sshServer.Start(); err != nil {
		log.Fatalf("SSH server error: %v", err)
	}
}

// openStore picks the level store from DB_TYPE: "postgres" uses
// DATABASE_URL, anything else a directory of JSON files.
func openStore() (maps.Store, error) {
	if os.Getenv("DB_TYPE") == "postgres" {
		conn := getenv("DATABASE_URL", "host=localhost user=gridcaster password=gridcaster dbname=gridcaster sslmode=disable")
		store, err := maps.NewPostgresStore(conn)
		if err != nil {
			return nil, err
		}
		log.Println("Using PostgreSQL map storage")
		return store, nil
	}

	dir := getenv("MAPS_DIR", defaultMapsDir)
	store, err := maps.NewDirStore(dir)
	if err != nil {
		return nil, err
	}
	log.Printf("Using map directory %s", dir)
	return store, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func ensureHostKey(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil // key already exists
	}

	log.Println("Generating new host key...")
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return err
	}

	keyBytes, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return err
	}

	pemBlock := &pem.Block{
		Type:  "PRIVATE KEY",
		Bytes: keyBytes,
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	return pem.Encode(f, pemBlock)
}
