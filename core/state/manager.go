package state

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/roothash-pay/auditBounty/storage"
)

// Manager provides typed access to ledger state stored in the underlying
// key-value database. All values are RLP encoded and all keys are hashed with
// keccak256 so raw key material never reaches the backend.
type Manager struct {
	db storage.Database
}

// NewManager creates a state manager operating on the provided database.
func NewManager(db storage.Database) *Manager {
	return &Manager{db: db}
}

var (
	rolePrefix  = []byte("role:")
	pausePrefix = []byte("pause:")
)

func roleKey(role string) []byte {
	buf := make([]byte, len(rolePrefix)+len(role))
	copy(buf, rolePrefix)
	copy(buf[len(rolePrefix):], role)
	return ethcrypto.Keccak256(buf)
}

func pauseKey(module string) []byte {
	buf := make([]byte, len(pausePrefix)+len(module))
	copy(buf, pausePrefix)
	copy(buf[len(pausePrefix):], module)
	return ethcrypto.Keccak256(buf)
}

func kvKey(key []byte) []byte {
	return ethcrypto.Keccak256(key)
}

// KVPut stores the provided value under the supplied key using RLP encoding.
func (m *Manager) KVPut(key []byte, value interface{}) error {
	if len(key) == 0 {
		return fmt.Errorf("kv: key must not be empty")
	}
	encoded, err := rlp.EncodeToBytes(value)
	if err != nil {
		return err
	}
	return m.db.Put(kvKey(key), encoded)
}

// KVGet retrieves the value stored under the supplied key and decodes it into
// the provided destination. The boolean return value indicates whether the
// key existed in state.
func (m *Manager) KVGet(key []byte, out interface{}) (bool, error) {
	if len(key) == 0 {
		return false, fmt.Errorf("kv: key must not be empty")
	}
	data, err := m.db.Get(kvKey(key))
	if err != nil {
		return false, err
	}
	if len(data) == 0 {
		return false, nil
	}
	if out == nil {
		return true, nil
	}
	if err := rlp.DecodeBytes(data, out); err != nil {
		return false, err
	}
	return true, nil
}

// KVAppend appends the provided value to the RLP-encoded byte slice list
// stored under the supplied key. Duplicate values are ignored so indexes stay
// free of repeats.
func (m *Manager) KVAppend(key []byte, value []byte) error {
	if len(key) == 0 {
		return fmt.Errorf("kv: key must not be empty")
	}
	hashed := kvKey(key)
	data, err := m.db.Get(hashed)
	if err != nil {
		return err
	}
	var list [][]byte
	if len(data) > 0 {
		if err := rlp.DecodeBytes(data, &list); err != nil {
			return err
		}
	}
	for _, existing := range list {
		if bytes.Equal(existing, value) {
			return nil
		}
	}
	list = append(list, append([]byte(nil), value...))
	encoded, err := rlp.EncodeToBytes(list)
	if err != nil {
		return err
	}
	return m.db.Put(hashed, encoded)
}

// KVGetList retrieves an RLP-encoded slice stored under the provided key and
// decodes it into the supplied destination slice pointer. When no value is
// present the destination is initialised with an empty slice to avoid nil
// surprises for callers.
func (m *Manager) KVGetList(key []byte, out interface{}) error {
	if len(key) == 0 {
		return fmt.Errorf("kv: key must not be empty")
	}
	data, err := m.db.Get(kvKey(key))
	if err != nil {
		return err
	}
	if len(data) == 0 {
		val := reflect.ValueOf(out)
		if val.Kind() != reflect.Ptr || val.IsNil() {
			return fmt.Errorf("kv: destination must be a non-nil pointer")
		}
		elem := val.Elem()
		if elem.Kind() != reflect.Slice {
			return fmt.Errorf("kv: destination must point to a slice")
		}
		elem.Set(reflect.MakeSlice(elem.Type(), 0, 0))
		return nil
	}
	return rlp.DecodeBytes(data, out)
}

// GrantRole associates the address with the role. Granting an already-held
// role is a no-op.
func (m *Manager) GrantRole(role string, addr []byte) error {
	role = strings.TrimSpace(role)
	if role == "" {
		return fmt.Errorf("role must not be empty")
	}
	if len(addr) == 0 {
		return fmt.Errorf("address must not be empty")
	}
	key := roleKey(role)
	members, err := m.loadRoleMembers(key)
	if err != nil {
		return err
	}
	for _, member := range members {
		if bytes.Equal(member, addr) {
			return nil
		}
	}
	members = append(members, append([]byte(nil), addr...))
	encoded, err := rlp.EncodeToBytes(members)
	if err != nil {
		return err
	}
	return m.db.Put(key, encoded)
}

// RevokeRole removes the address from the role membership list. Revoking a
// role the address never held is a no-op.
func (m *Manager) RevokeRole(role string, addr []byte) error {
	key := roleKey(strings.TrimSpace(role))
	members, err := m.loadRoleMembers(key)
	if err != nil {
		return err
	}
	filtered := members[:0]
	for _, member := range members {
		if !bytes.Equal(member, addr) {
			filtered = append(filtered, member)
		}
	}
	if len(filtered) == len(members) {
		return nil
	}
	encoded, err := rlp.EncodeToBytes(filtered)
	if err != nil {
		return err
	}
	return m.db.Put(key, encoded)
}

// RoleMembers returns every address currently holding the role.
func (m *Manager) RoleMembers(role string) ([][]byte, error) {
	members, err := m.loadRoleMembers(roleKey(strings.TrimSpace(role)))
	if err != nil {
		return nil, err
	}
	out := make([][]byte, 0, len(members))
	for _, member := range members {
		out = append(out, append([]byte(nil), member...))
	}
	return out, nil
}

// HasRole reports whether the provided address is associated with the
// specified role. Errors while reading the underlying state result in a
// false return, matching the best-effort semantics required by the callers.
func (m *Manager) HasRole(role string, addr []byte) bool {
	if len(addr) == 0 {
		return false
	}
	members, err := m.loadRoleMembers(roleKey(strings.TrimSpace(role)))
	if err != nil {
		return false
	}
	for _, member := range members {
		if bytes.Equal(member, addr) {
			return true
		}
	}
	return false
}

func (m *Manager) loadRoleMembers(key []byte) ([][]byte, error) {
	data, err := m.db.Get(key)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return [][]byte{}, nil
	}
	var members [][]byte
	if err := rlp.DecodeBytes(data, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// SetPaused stores the pause flag for the given module.
func (m *Manager) SetPaused(module string, paused bool) error {
	module = strings.TrimSpace(module)
	if module == "" {
		return fmt.Errorf("module must not be empty")
	}
	encoded, err := rlp.EncodeToBytes(paused)
	if err != nil {
		return err
	}
	return m.db.Put(pauseKey(module), encoded)
}

// IsPaused reports whether the given module is currently paused. Read errors
// report unpaused so a corrupt flag cannot brick administrative recovery.
func (m *Manager) IsPaused(module string) bool {
	data, err := m.db.Get(pauseKey(strings.TrimSpace(module)))
	if err != nil || len(data) == 0 {
		return false
	}
	var paused bool
	if err := rlp.DecodeBytes(data, &paused); err != nil {
		return false
	}
	return paused
}
