package bounty

import (
	"math/big"
	"sync"

	"github.com/roothash-pay/auditBounty/core/events"
	"github.com/roothash-pay/auditBounty/custody"
	nativecommon "github.com/roothash-pay/auditBounty/native/common"
	"github.com/roothash-pay/auditBounty/observability/metrics"
)

// State describes the functionality the bounty engine needs from the
// surrounding state implementation.
type State interface {
	HasRole(role string, addr []byte) bool
	GrantRole(role string, addr []byte) error
	RevokeRole(role string, addr []byte) error
	SetPaused(module string, paused bool) error
	KVGet(key []byte, out interface{}) (bool, error)
	KVPut(key []byte, value interface{}) error
	KVAppend(key []byte, value []byte) error
	KVGetList(key []byte, out interface{}) error
}

// Engine wires the incentive ledger business logic with external state, the
// custody vault and event emitters. Mutations on the same asset serialize on
// a per-asset lock held across the full operation including the vault call;
// distinct assets proceed concurrently.
type Engine struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex

	state        State
	vault        custody.Vault
	emitter      events.Emitter
	pauses       nativecommon.PauseView
	nativeSymbol string
	telemetry    *metrics.BountyMetrics
}

// NewEngine creates a bounty engine with a no-op emitter and the default
// native symbol. Callers wire state, vault and emitter via the setters.
func NewEngine() *Engine {
	return &Engine{
		locks:        make(map[string]*sync.Mutex),
		emitter:      events.NoopEmitter{},
		nativeSymbol: DefaultNativeSymbol,
		telemetry:    metrics.Bounty(),
	}
}

// SetState configures the state backend used by the engine.
func (e *Engine) SetState(state State) { e.state = state }

// SetVault configures the custody collaborator used by the engine.
func (e *Engine) SetVault(vault custody.Vault) { e.vault = vault }

// SetEmitter configures the event emitter used by the engine. Passing nil
// resets the emitter to a no-op implementation.
func (e *Engine) SetEmitter(emitter events.Emitter) {
	if emitter == nil {
		e.emitter = events.NoopEmitter{}
		return
	}
	e.emitter = emitter
}

// SetPauses configures the pause view consulted by funding and claims.
func (e *Engine) SetPauses(p nativecommon.PauseView) { e.pauses = p }

// SetNativeSymbol overrides the asset identifier whose funding path requires
// a matching attached value. An empty symbol restores the default.
func (e *Engine) SetNativeSymbol(symbol string) {
	normalized := NormalizeAsset(symbol)
	if normalized == "" {
		normalized = DefaultNativeSymbol
	}
	e.nativeSymbol = normalized
}

func (e *Engine) emit(event events.Event) {
	if e == nil || e.emitter == nil || event == nil {
		return
	}
	e.emitter.Emit(event)
}

func (e *Engine) ready() error {
	if e.state == nil {
		return errNilState
	}
	if e.vault == nil {
		return errNilVault
	}
	return nil
}

// assetLock returns the mutex serializing operations on the given asset,
// creating it on first use.
func (e *Engine) assetLock(asset string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	lock, ok := e.locks[asset]
	if !ok {
		lock = &sync.Mutex{}
		e.locks[asset] = lock
	}
	return lock
}

var (
	assetPrefix   = []byte("bounty/asset/")
	assetIndexKey = []byte("bounty/asset/index")
	pendingPrefix = []byte("bounty/pending/")
	statsPrefix   = []byte("bounty/stats/")
)

func assetKey(symbol string) []byte {
	return append(append([]byte(nil), assetPrefix...), symbol...)
}

func statsKey(symbol string) []byte {
	return append(append([]byte(nil), statsPrefix...), symbol...)
}

func pendingKey(symbol string, account [20]byte) []byte {
	key := make([]byte, 0, len(pendingPrefix)+len(symbol)+1+len(account))
	key = append(key, pendingPrefix...)
	key = append(key, symbol...)
	key = append(key, '/')
	key = append(key, account[:]...)
	return key
}

func (e *Engine) loadAsset(symbol string) (*assetInfo, bool, error) {
	info := new(assetInfo)
	found, err := e.state.KVGet(assetKey(symbol), info)
	if err != nil {
		return nil, false, err
	}
	if !found {
		return nil, false, nil
	}
	return info, true, nil
}

func (e *Engine) isSupported(symbol string) (bool, error) {
	info, found, err := e.loadAsset(symbol)
	if err != nil || !found {
		return false, err
	}
	return info.Supported, nil
}

func (e *Engine) loadStats(symbol string) (*assetStats, error) {
	stats := new(assetStats)
	found, err := e.state.KVGet(statsKey(symbol), stats)
	if err != nil {
		return nil, err
	}
	if !found {
		return newAssetStats(), nil
	}
	return stats.normalize(), nil
}

func (e *Engine) writeStats(symbol string, stats *assetStats) error {
	return e.state.KVPut(statsKey(symbol), stats.normalize())
}

func (e *Engine) loadPending(symbol string, account [20]byte) (*big.Int, error) {
	amount := new(big.Int)
	found, err := e.state.KVGet(pendingKey(symbol, account), amount)
	if err != nil {
		return nil, err
	}
	if !found {
		return big.NewInt(0), nil
	}
	return amount, nil
}

func (e *Engine) writePending(symbol string, account [20]byte, amount *big.Int) error {
	return e.state.KVPut(pendingKey(symbol, account), amount)
}
