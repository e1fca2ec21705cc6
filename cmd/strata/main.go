package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stratatech/strata/ingestion"
	"github.com/stratatech/strata/node"
	"github.com/stratatech/strata/segment"
	"github.com/stratatech/strata/stream"
)

var (
	configPath  string
	networkName string
	rpcURL      string
	chainKind   string
	datadir     string
	devnet      bool
	fromBlock   uint64

	segmentSize uint64
	groupSize   uint64

	rpcWithTransactions bool
	rpcBlockReceipts    bool

	serverAddr     string
	maxMessageSize string
	authSecret     string
	metadataKeys   []string

	clientTimeout time.Duration
	bearerToken   string

	logLevel string
	logFile  string
)

func init() {
	rootCmd.AddCommand(startCmd, statusCmd)

	rootCmd.PersistentFlags().StringVar(&logLevel, "log.level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log.file", "", "also write logs to this rotating file")

	startCmd.Flags().StringVar(&configPath, "config", "", "path to the networks config file")
	startCmd.Flags().StringVar(&networkName, "network", "", "network name from the config file")
	startCmd.Flags().StringVar(&rpcURL, "rpc", "", "provider url (overrides --config/--network)")
	startCmd.Flags().StringVar(&chainKind, "chain", string(node.NetworkEthereum), "chain kind when using --rpc (ethereum, starknet)")
	startCmd.Flags().StringVar(&datadir, "datadir", "strata-data", "data directory for staging and durable storage")
	startCmd.Flags().BoolVar(&devnet, "devnet", false, "use a temporary scratch data directory, deleted on exit")
	startCmd.Flags().Uint64Var(&fromBlock, "from-block", 0, "first block to ingest")
	startCmd.Flags().Uint64Var(&segmentSize, "segment-size", segment.DefaultOptions.SegmentSize, "blocks per segment")
	startCmd.Flags().Uint64Var(&groupSize, "group-size", segment.DefaultOptions.GroupSize, "blocks per segment group")
	startCmd.Flags().BoolVar(&rpcWithTransactions, "rpc.with-transactions", true, "fetch blocks with full transaction bodies")
	startCmd.Flags().BoolVar(&rpcBlockReceipts, "rpc.block-receipts", true, "fetch receipts with one call per block")
	startCmd.Flags().StringVar(&serverAddr, "server.addr", "localhost:7171", "data stream server <host>:<port>")
	startCmd.Flags().StringVar(&maxMessageSize, "server.max-message-size", "100mb", "maximum grpc message size")
	startCmd.Flags().StringVar(&authSecret, "auth.secret", "", "shared secret validating subscriber bearer tokens; empty leaves the server open")
	startCmd.Flags().StringSliceVar(&metadataKeys, "use-metadata", nil, "metadata keys to log for tracing and metering")

	statusCmd.Flags().StringVar(&serverAddr, "server.addr", "localhost:7171", "data stream server <host>:<port>")
	statusCmd.Flags().DurationVar(&clientTimeout, "client.timeout", stream.DefaultClientTimeout, "stream client timeout")
	statusCmd.Flags().StringVar(&bearerToken, "auth.token", "", "bearer token")
}

var rootCmd = &cobra.Command{
	Use:   "strata",
	Short: "Blockchain indexing pipeline: ingest blocks, seal segments, stream data",
}

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Run the ingestion pipeline and data stream server",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := setupLogger(logLevel, logFile)
		if err != nil {
			return err
		}
		defer logger.Sync()

		network, err := resolveNetwork()
		if err != nil {
			return err
		}

		var maxSize datasize.ByteSize
		if err := maxSize.UnmarshalText([]byte(maxMessageSize)); err != nil {
			return fmt.Errorf("parsing --server.max-message-size: %w", err)
		}

		dataDir := datadir
		if devnet {
			scratch, err := os.MkdirTemp("", "strata-devnet-")
			if err != nil {
				return err
			}
			defer os.RemoveAll(scratch)
			logger.Info("starting in devnet mode", zap.String("datadir", scratch))
			dataDir = scratch
		}

		n := node.NewNode(node.Options{
			Network:    network,
			FirstBlock: fromBlock,
			SegmentOptions: segment.Options{
				SegmentSize: segmentSize,
				GroupSize:   groupSize,
			},
			RpcIngestion: ingestion.RpcIngestionOptions{
				GetBlockByNumberWithTransactions: rpcWithTransactions,
				GetBlockReceiptsByNumber:         rpcBlockReceipts,
			},
			DataDir:        dataDir,
			ServerAddr:     serverAddr,
			MaxMessageSize: int(maxSize.Bytes()),
			AuthSecret:     authSecret,
			MetadataKeys:   metadataKeys,
		}, logger)

		if err := n.Run(cmd.Context()); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			logger.Error("pipeline failed", zap.Error(err))
			return err
		}
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Query a running data stream server",
	RunE: func(cmd *cobra.Command, args []string) error {
		builder := stream.NewClientBuilder().WithTimeout(clientTimeout)
		if bearerToken != "" {
			builder = builder.WithBearerToken(bearerToken)
		}
		client, err := builder.Connect(cmd.Context(), serverAddr)
		if err != nil {
			return err
		}
		defer client.Close()

		response, err := client.Status(cmd.Context())
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(response, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func resolveNetwork() (node.NetworkConfig, error) {
	if rpcURL != "" {
		return node.NetworkConfig{
			Kind:        node.NetworkKind(chainKind),
			ProviderURL: rpcURL,
		}, nil
	}
	if configPath == "" || networkName == "" {
		return node.NetworkConfig{}, fmt.Errorf("either --rpc or --config and --network are required")
	}
	config, err := node.LoadConfig(configPath)
	if err != nil {
		return node.NetworkConfig{}, err
	}
	return config.Network(networkName)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
