package config

import (
	"github.com/scorpionlabs/tictac/pkg/board"
	"github.com/scorpionlabs/tictac/pkg/errors"
	"github.com/scorpionlabs/tictac/pkg/waterfall"
)

// ValidateAndSetDefaults fills zero values with defaults and rejects values
// that cannot be laid out or dialled. Padding is the one numeric field whose
// zero value is kept.
func (c *Config) ValidateAndSetDefaults() error {
	if err := c.Layout.validate(); err != nil {
		return err
	}
	if err := c.Board.validate(); err != nil {
		return err
	}
	for i, s := range c.Sections {
		if err := s.validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "section %d", i)
		}
	}
	if err := c.Peer.validate(); err != nil {
		return err
	}
	if err := c.Server.validate(); err != nil {
		return err
	}
	return c.Cache.validate()
}

func (l *Layout) validate() error {
	if l.Columns < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "layout.columns must not be negative, got %d", l.Columns)
	}
	if l.Columns == 0 {
		l.Columns = waterfall.DefaultColumns
	}
	if l.Padding < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "layout.padding must not be negative, got %g", l.Padding)
	}
	if l.Width < 0 || l.Height < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "layout bounds must not be negative, got %gx%g", l.Width, l.Height)
	}
	if l.Width == 0 {
		l.Width = DefaultWidth
	}
	if l.Height == 0 {
		l.Height = DefaultHeight
	}
	return nil
}

func (b *Board) validate() error {
	if b.Cells < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "board.cells must not be negative, got %d", b.Cells)
	}
	if b.Cells == 0 {
		b.Cells = board.DefaultCells
	}
	if b.Header < 0 || b.Footer < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "board header and footer must not be negative")
	}
	return nil
}

func (s Section) validate() error {
	for _, pair := range [][]float64{s.Header, s.Footer} {
		if pair != nil && len(pair) != 2 {
			return errors.New(errors.ErrCodeInvalidConfig, "header and footer must be [width, height], got %v", pair)
		}
	}
	return nil
}

func (p *Peer) validate() error {
	if p.Name != "" {
		if err := errors.ValidatePlayerName(p.Name); err != nil {
			return err
		}
	}
	if p.Transport == "" {
		p.Transport = DefaultTransport
	}
	if p.Channel == "" {
		p.Channel = DefaultChannel
	}
	if p.RedisAddr == "" {
		p.RedisAddr = DefaultRedisAddr
	}
	switch p.Transport {
	case TransportMemory:
	case TransportRedis:
		if err := errors.ValidateAddr(p.RedisAddr); err != nil {
			return err
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "peer.transport must be %q or %q, got %q", TransportMemory, TransportRedis, p.Transport)
	}
	return errors.ValidateChannelName(p.Channel)
}

func (s *Server) validate() error {
	if s.Addr == "" {
		s.Addr = DefaultAddr
	}
	return errors.ValidateAddr(s.Addr)
}

func (c *Cache) validate() error {
	if c.Backend == "" {
		c.Backend = DefaultCache
	}
	if c.RedisAddr == "" {
		c.RedisAddr = DefaultRedisAddr
	}
	if c.MongoURI == "" {
		c.MongoURI = DefaultMongoURI
	}
	switch c.Backend {
	case CacheFile, CacheNone, CacheMongo:
	case CacheRedis:
		return errors.ValidateAddr(c.RedisAddr)
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend must be one of %q, %q, %q or %q, got %q",
			CacheFile, CacheRedis, CacheMongo, CacheNone, c.Backend)
	}
	return nil
}
