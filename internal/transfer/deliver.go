package transfer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Delivery outcome sentinels. A deliverer returns ErrUnavailable when the
// mechanism is not present in this environment and ErrCancelled when the
// user aborted it; both make the chain fall through to the next mechanism.
var (
	ErrUnavailable = errors.New("delivery mechanism unavailable")
	ErrCancelled   = errors.New("delivery cancelled")
)

// Deliverer is one way of handing an export artifact to the user.
type Deliverer interface {
	// Name identifies the mechanism in logs.
	Name() string
	// Deliver attempts to hand over the artifact.
	Deliver(a Artifact) error
}

// BridgeDeliverer hands the raw document to a host bridge callback, the
// way an embedding mobile shell exposes a share function. Unavailable when
// no bridge is installed.
type BridgeDeliverer struct {
	// ShareText is the host-provided callback, nil when absent.
	ShareText func(text string) error
}

func (d *BridgeDeliverer) Name() string { return "host-bridge" }

func (d *BridgeDeliverer) Deliver(a Artifact) error {
	if d.ShareText == nil {
		return ErrUnavailable
	}
	return d.ShareText(string(a.Data))
}

// ShareDeliverer hands the artifact to a native share sheet, when the
// environment provides one.
type ShareDeliverer struct {
	// Share is the environment hook, nil when absent.
	Share func(a Artifact) error
}

func (d *ShareDeliverer) Name() string { return "share-sheet" }

func (d *ShareDeliverer) Deliver(a Artifact) error {
	if d.Share == nil {
		return ErrUnavailable
	}
	return d.Share(a)
}

// DownloadDeliverer writes the artifact to a directory. This is the final
// fallback and is always available.
type DownloadDeliverer struct {
	// Dir is the target directory; empty means the working directory.
	Dir string
}

func (d *DownloadDeliverer) Name() string { return "download" }

func (d *DownloadDeliverer) Deliver(a Artifact) error {
	path := filepath.Join(d.Dir, a.Filename)
	if err := os.WriteFile(path, a.Data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// DefaultChain returns the delivery mechanisms in preference order:
// host bridge, native share, plain download.
func DefaultChain(bridge func(string) error, share func(Artifact) error, dir string) []Deliverer {
	return []Deliverer{
		&BridgeDeliverer{ShareText: bridge},
		&ShareDeliverer{Share: share},
		&DownloadDeliverer{Dir: dir},
	}
}

// Deliver iterates the chain and stops at the first success. Unavailable,
// cancelled, or failed mechanisms fall through to the next; only the error
// of the final mechanism is surfaced.
func Deliver(a Artifact, chain []Deliverer, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	var lastErr error
	for _, d := range chain {
		err := d.Deliver(a)
		if err == nil {
			log.Info("export delivered", zap.String("mechanism", d.Name()), zap.Int("notes", a.Count))
			return nil
		}
		lastErr = err
		log.Warn("delivery mechanism failed, trying next",
			zap.String("mechanism", d.Name()), zap.Error(err))
	}
	return lastErr
}
