package dumps

import (
	"context"

	"github.com/reusee/hintvm/logs"
	"github.com/reusee/hintvm/memories"
	"github.com/reusee/hintvm/nets"
	"github.com/reusee/hintvm/vmconfigs"
)

// Send streams relocated memory values to the configured sink. It does nothing when no sink is configured.
type Send func(ctx context.Context, cells []memories.RelocatedCell) error

func (Module) Send(
	dialer nets.Dialer,
	addr vmconfigs.DumpAddr,
	network vmconfigs.DumpNetwork,
	logger logs.Logger,
) Send {
	return func(ctx context.Context, cells []memories.RelocatedCell) (err error) {
		if addr == "" {
			return nil
		}
		conn, err := dialer.DialContext(ctx, string(network), string(addr))
		if err != nil {
			return err
		}
		defer func() {
			if e := conn.Close(); e != nil && err == nil {
				err = e
			}
		}()
		if err := WriteValues(conn, cells); err != nil {
			return err
		}
		logger.InfoContext(ctx, "memory sent",
			"network", network,
			"addr", addr,
			"cells", len(cells),
		)
		return nil
	}
}
