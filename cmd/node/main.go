package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/distributed-btg/pkg/actor"
	"github.com/distributed-btg/pkg/actors"
	"github.com/distributed-btg/pkg/cluster"
	"github.com/distributed-btg/pkg/config"
	"github.com/distributed-btg/pkg/graphio"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to configuration file (YAML)")
	)
	flag.Parse()

	var cfg *config.Config
	var err error

	if *configPath != "" {
		cfg, err = config.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		log.Printf("Loaded configuration from %s", *configPath)
	} else {
		cfg = config.LoadConfigFromEnv()
		if cfg.MachineID == "" {
			log.Fatalf("No configuration file provided and MACHINE_ID not set")
		}
		log.Printf("Loaded configuration from environment")
	}

	log.Printf("Starting node %s on port %d", cfg.MachineID, cfg.Port)

	provider := cluster.NewStaticProvider(cfg.MachineID, true)
	provider.RegisterMachine(cfg.MachineID, fmt.Sprintf("localhost:%d", cfg.Port))

	totalPartitions := cfg.Actors.Partitions
	for _, peer := range cfg.Network.Peers {
		provider.RegisterMachine(peer.ID, peer.Address)
		for i := 0; i < peer.Partitions; i++ {
			provider.RegisterActor(actor.PartitionRole, actor.NewPID(peer.ID, fmt.Sprintf("partition-%d", i)))
		}
		totalPartitions += peer.Partitions
		log.Printf("Registered peer %s (%s) with %d partitions", peer.ID, peer.Address, peer.Partitions)
	}

	system := actor.NewSystem(cfg.MachineID, provider)

	var coordinatorPID actor.PID
	var coordinator *actors.CoordinatorActor
	if cfg.IsCoordinator {
		coordinatorPID = actor.NewPID(cfg.MachineID, "coordinator")
		coordinator = actors.NewCoordinatorActor(coordinatorPID, system, cfg.Job.MaxSupersteps)
		if err := system.Register(coordinator); err != nil {
			log.Fatalf("Failed to register coordinator: %v", err)
		}
	} else {
		coordinatorPID = actor.NewPID(cfg.Coordinator, "coordinator")
		log.Printf("Using remote coordinator: %s", coordinatorPID)
	}
	provider.SetCoordinator(coordinatorPID)

	if cfg.IsCoordinator {
		collectorPID := actor.NewPID(cfg.MachineID, "collector")
		collector := actors.NewCollectorActor(collectorPID, system, cfg.Job.OutputPath, totalPartitions)
		if err := system.Register(collector); err != nil {
			log.Fatalf("Failed to register collector: %v", err)
		}
		provider.RegisterActor(actor.CollectorRole, collectorPID)
	}

	for i := 0; i < cfg.Actors.Partitions; i++ {
		partitionPID := actor.NewPID(cfg.MachineID, fmt.Sprintf("partition-%d", i))
		partition := actors.NewPartitionActor(partitionPID, system)
		if err := system.Register(partition); err != nil {
			log.Fatalf("Failed to register partition %d: %v", i, err)
		}
		provider.RegisterActor(actor.PartitionRole, partitionPID)
	}

	if err := system.Start(); err != nil {
		log.Fatalf("Failed to start actor system: %v", err)
	}

	var done <-chan struct{}
	if coordinator != nil {
		g, err := graphio.LoadGraph(cfg.Job.VertexPath, cfg.Job.EdgePath)
		if err != nil {
			log.Fatalf("Failed to load graph: %v", err)
		}
		coordinator.StartExtraction(g)
		done = coordinator.Done()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigChan:
		log.Println("Received shutdown signal")
	case <-timeoutOrDone(done, cfg.Job.Timeout):
	}

	time.Sleep(cfg.Job.GracePeriod)
	log.Println("Shutting down...")
	system.Shutdown()
	log.Println("Shutdown complete")
}

// timeoutOrDone waits for the extraction to finish, bounded by the job
// timeout. Worker nodes have no done channel and only stop on timeout or
// signal.
func timeoutOrDone(done <-chan struct{}, timeout time.Duration) <-chan struct{} {
	out := make(chan struct{})
	go func() {
		defer close(out)
		if done == nil {
			time.Sleep(timeout)
			return
		}
		select {
		case <-done:
			log.Println("Extraction finished")
		case <-time.After(timeout):
			log.Println("Extraction timeout")
		}
	}()
	return out
}
