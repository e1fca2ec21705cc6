package node

import (
	"context"
	"errors"
	"fmt"
	"net"
	"path/filepath"
	"time"

	grpc_middleware "github.com/grpc-ecosystem/go-grpc-middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/stratatech/strata/chain"
	"github.com/stratatech/strata/gointerfaces/datastream"
	"github.com/stratatech/strata/ingestion"
	"github.com/stratatech/strata/segment"
	"github.com/stratatech/strata/storage"
	"github.com/stratatech/strata/stream"
)

// queueCapacity is the depth of every inter-task queue. Bounded queues give
// backpressure and ensure cancellation is observed within one slot.
const queueCapacity = 128

type Options struct {
	Network        NetworkConfig
	FirstBlock     uint64
	SegmentOptions segment.Options
	RpcIngestion   ingestion.RpcIngestionOptions
	DataDir        string

	ServerAddr        string
	MaxMessageSize    int
	AuthSecret        string
	HeartbeatInterval time.Duration
	MetadataKeys      []string

	PollInterval time.Duration
}

// Node wires tracker, downloader, segmenter and stream server into one
// pipeline sharing a cancellation context. Tasks communicate exclusively
// through bounded queues; failure of any task stops the rest.
type Node struct {
	options Options
	logger  *zap.Logger
}

func NewNode(options Options, logger *zap.Logger) *Node {
	return &Node{options: options, logger: logger}
}

func (n *Node) Run(ctx context.Context) error {
	if err := n.options.SegmentOptions.Validate(); err != nil {
		return err
	}

	provider, closeProvider, err := n.newProvider(ctx)
	if err != nil {
		return err
	}
	defer closeProvider()

	staging := storage.NewLocalBackend(filepath.Join(n.options.DataDir, "staging"))
	durable := storage.NewLocalBackend(filepath.Join(n.options.DataDir, "store"))

	// Resume from a previously published snapshot if there is one.
	snapshot, resumed, err := ingestion.ReadSnapshot(ctx, durable)
	if err != nil {
		return err
	}
	firstBlock := n.options.FirstBlock
	if resumed {
		if snapshot.SegmentOptions != n.options.SegmentOptions {
			return fmt.Errorf("segment options changed: snapshot has %+v, configured %+v",
				snapshot.SegmentOptions, n.options.SegmentOptions)
		}
		firstBlock = snapshot.NextBlock()
		n.logger.Info("resuming from snapshot",
			zap.Uint64("revision", snapshot.Revision),
			zap.Uint64("first_block", firstBlock))
	} else {
		snapshot = ingestion.StartingSnapshot(n.options.FirstBlock, n.options.SegmentOptions)
	}

	tracker := chain.NewTracker(provider, chain.TrackerOptions{PollInterval: n.options.PollInterval}, n.logger)
	downloader := ingestion.NewDownloader(provider, staging, n.options.RpcIngestion, n.logger)
	segmenter := ingestion.NewSegmenter(staging, durable, n.logger)

	var observer stream.RequestObserver
	if len(n.options.MetadataKeys) > 0 {
		observer = stream.NewMetadataKeyObserver(n.options.MetadataKeys, n.logger)
	}
	server, err := stream.NewServer(staging, durable, stream.ServerOptions{
		HeartbeatInterval: n.options.HeartbeatInterval,
		Observer:          observer,
	}, n.logger)
	if err != nil {
		return err
	}

	grpcServer, listener, err := n.newGrpcServer(server)
	if err != nil {
		return err
	}

	changes := make(chan chain.ChainChange, queueCapacity)
	events := make(chan ingestion.BlockEvent, queueCapacity)
	snapshotChanges := make(chan ingestion.SnapshotChange, queueCapacity)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return tracker.Run(ctx, changes) })
	g.Go(func() error { return downloader.Run(ctx, firstBlock, changes, events) })
	g.Go(func() error { return segmenter.Run(ctx, snapshot, events, snapshotChanges) })
	g.Go(func() error { return server.ApplyChanges(ctx, snapshotChanges) })
	g.Go(func() error {
		n.logger.Info("data stream server listening", zap.String("addr", listener.Addr().String()))
		return grpcServer.Serve(listener)
	})
	g.Go(func() error {
		<-ctx.Done()
		grpcServer.GracefulStop()
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (n *Node) newProvider(ctx context.Context) (chain.Provider, func(), error) {
	switch n.options.Network.Kind {
	case NetworkEthereum:
		provider, err := chain.NewEthereumProvider(ctx, n.options.Network.ProviderURL, n.logger)
		if err != nil {
			return nil, nil, err
		}
		return provider, provider.Close, nil
	case NetworkStarkNet:
		provider, err := chain.NewStarkNetProvider(ctx, n.options.Network.ProviderURL, n.logger)
		if err != nil {
			return nil, nil, err
		}
		return provider, provider.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown network kind: %q", n.options.Network.Kind)
	}
}

func (n *Node) newGrpcServer(server datastream.DataStreamServer) (*grpc.Server, net.Listener, error) {
	var authorizer stream.Authorizer
	if n.options.AuthSecret != "" {
		authorizer = stream.NewJwtAuthorizer([]byte(n.options.AuthSecret))
	}

	options := []grpc.ServerOption{
		grpc.UnaryInterceptor(grpc_middleware.ChainUnaryServer(stream.UnaryAuthInterceptor(authorizer))),
		grpc.StreamInterceptor(grpc_middleware.ChainStreamServer(stream.StreamAuthInterceptor(authorizer))),
	}
	if n.options.MaxMessageSize > 0 {
		options = append(options,
			grpc.MaxRecvMsgSize(n.options.MaxMessageSize),
			grpc.MaxSendMsgSize(n.options.MaxMessageSize))
	}

	listener, err := net.Listen("tcp", n.options.ServerAddr)
	if err != nil {
		return nil, nil, fmt.Errorf("listening on %s: %w", n.options.ServerAddr, err)
	}

	grpcServer := grpc.NewServer(options...)
	datastream.RegisterDataStreamServer(grpcServer, server)
	return grpcServer, listener, nil
}
