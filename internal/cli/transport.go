package cli

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/scorpionlabs/tictac/pkg/config"
	"github.com/scorpionlabs/tictac/pkg/errors"
	"github.com/scorpionlabs/tictac/pkg/peer"
)

// peerFlags are the move exchange overrides shared by serve and play.
type peerFlags struct {
	name      string
	transport string
	redisAddr string
	channel   string
}

func (f *peerFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "display name sent with moves (default: host name)")
	cmd.Flags().StringVar(&f.transport, "transport", "", "move transport: memory or redis (default from config)")
	cmd.Flags().StringVar(&f.redisAddr, "redis", "", "redis address for the redis transport")
	cmd.Flags().StringVar(&f.channel, "channel", "", "channel to join (default from config)")
}

// apply overrides the [peer] table with the flags the user set.
func (f *peerFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("name") {
		cfg.Peer.Name = f.name
	}
	if cmd.Flags().Changed("transport") {
		cfg.Peer.Transport = f.transport
	}
	if cmd.Flags().Changed("redis") {
		cfg.Peer.RedisAddr = f.redisAddr
	}
	if cmd.Flags().Changed("channel") {
		cfg.Peer.Channel = f.channel
	}
	if cfg.Peer.Name == "" {
		cfg.Peer.Name = peer.DefaultName()
	}
	return cfg.ValidateAndSetDefaults()
}

// openChannel joins the configured channel. The memory transport only
// reaches other members of the same process.
func openChannel(ctx context.Context, cfg config.Config) (peer.Channel, error) {
	switch cfg.Peer.Transport {
	case config.TransportMemory:
		return peer.NewHub(cfg.Peer.Channel).Join(cfg.Peer.Name), nil
	case config.TransportRedis:
		return peer.NewRedisChannel(ctx, peer.RedisConfig{
			Addr:    cfg.Peer.RedisAddr,
			Channel: cfg.Peer.Channel,
			From:    cfg.Peer.Name,
		})
	}
	return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown transport %q", cfg.Peer.Transport)
}

// openSession joins the configured channel as cfg.Peer.Name.
func openSession(ctx context.Context, cfg config.Config, logger *log.Logger) (*peer.Session, error) {
	ch, err := openChannel(ctx, cfg)
	if err != nil {
		return nil, err
	}
	sess, err := peer.NewSession(cfg.Peer.Name, ch, logger)
	if err != nil {
		_ = ch.Close()
		return nil, err
	}
	return sess, nil
}
