package store

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"sync"

	"github.com/mapforge/content-browser/model"
)

func init() {
	// Register common types that might appear in model.Asset (map[string]interface{})
	// This helps Gob know how to handle them when they are stored as interface{} values.
	gob.Register([]interface{}{})
	gob.Register(map[string]interface{}{})
	// JSON unmarshalling into map[string]interface{} gives []interface{} for
	// arrays, but tag lists are normalized to []string where possible.
	gob.Register([]string{})
	gob.Register(float64(0))
	gob.Register(false)
}

// AssetStore holds every asset of one library, keyed by a compact internal ID
// so folder and search snapshots stay cheap. The external assetID (usually
// the asset's relative path) maps onto the internal ID.
type AssetStore struct {
	Mu                     sync.RWMutex
	Assets                 map[uint32]model.Asset // Internal ID to full asset record
	ExternalIDtoInternalID map[string]uint32      // User-provided ID to internal uint32 ID
	NextID                 uint32
}

// gobAssetStoreData is a helper struct for Gob encoding/decoding AssetStore data.
// It excludes the mutex.
type gobAssetStoreData struct {
	Assets                 map[uint32]model.Asset
	ExternalIDtoInternalID map[string]uint32
	NextID                 uint32
}

// GobEncode implements the gob.GobEncoder interface for AssetStore.
func (as *AssetStore) GobEncode() ([]byte, error) {
	as.Mu.RLock()
	defer as.Mu.RUnlock()

	// Normalize []interface{} tag lists to []string where every element is a
	// string, so the gob stream stays stable across JSON round-trips.
	storableAssets := make(map[uint32]model.Asset, len(as.Assets))
	for id, asset := range as.Assets {
		storableAsset := make(model.Asset, len(asset))
		for k, val := range asset {
			if interfaceSlice, ok := val.([]interface{}); ok {
				stringSlice := make([]string, 0, len(interfaceSlice))
				canConvertToStringSlice := true
				for _, item := range interfaceSlice {
					if strItem, isString := item.(string); isString {
						stringSlice = append(stringSlice, strItem)
					} else {
						canConvertToStringSlice = false
						break
					}
				}
				if canConvertToStringSlice {
					storableAsset[k] = stringSlice
				} else {
					storableAsset[k] = val // Store as is, relying on gob.Register
				}
			} else {
				storableAsset[k] = val
			}
		}
		storableAssets[id] = storableAsset
	}

	dataToEncode := gobAssetStoreData{
		Assets:                 storableAssets,
		ExternalIDtoInternalID: as.ExternalIDtoInternalID,
		NextID:                 as.NextID,
	}

	var buf bytes.Buffer
	encoder := gob.NewEncoder(&buf)
	if err := encoder.Encode(dataToEncode); err != nil {
		return nil, fmt.Errorf("failed to gob encode asset store data: %w", err)
	}
	return buf.Bytes(), nil
}

// GobDecode implements the gob.GobDecoder interface for AssetStore.
func (as *AssetStore) GobDecode(data []byte) error {
	decodedData := gobAssetStoreData{}

	buf := bytes.NewBuffer(data)
	decoder := gob.NewDecoder(buf)
	if err := decoder.Decode(&decodedData); err != nil {
		return fmt.Errorf("failed to gob decode asset store data: %w", err)
	}

	as.Mu.Lock()
	defer as.Mu.Unlock()

	as.Assets = decodedData.Assets
	as.ExternalIDtoInternalID = decodedData.ExternalIDtoInternalID
	as.NextID = decodedData.NextID

	// Ensure maps are initialized if they were nil after decoding
	if as.Assets == nil {
		as.Assets = make(map[uint32]model.Asset)
	}
	if as.ExternalIDtoInternalID == nil {
		as.ExternalIDtoInternalID = make(map[string]uint32)
	}

	return nil
}

// Snapshot returns the assets in ascending internal-ID order. The returned
// slice is freshly allocated; the asset maps themselves are shared and must
// not be mutated by callers.
func (as *AssetStore) Snapshot() []model.Asset {
	as.Mu.RLock()
	defer as.Mu.RUnlock()

	assets := make([]model.Asset, 0, len(as.Assets))
	for id := uint32(0); id < as.NextID; id++ {
		if asset, ok := as.Assets[id]; ok {
			assets = append(assets, asset)
		}
	}
	return assets
}

// Upsert adds the asset under its external ID, replacing any previous record
// with the same ID. The asset must carry a non-empty assetID field.
func (as *AssetStore) Upsert(asset model.Asset) error {
	assetID, ok := asset.GetAssetID()
	if !ok {
		return fmt.Errorf("asset has no 'assetID' field")
	}

	as.Mu.Lock()
	defer as.Mu.Unlock()

	if internalID, exists := as.ExternalIDtoInternalID[assetID]; exists {
		as.Assets[internalID] = asset
		return nil
	}
	internalID := as.NextID
	as.NextID++
	as.ExternalIDtoInternalID[assetID] = internalID
	as.Assets[internalID] = asset
	return nil
}

// Get returns the asset stored under the external ID.
func (as *AssetStore) Get(assetID string) (model.Asset, bool) {
	as.Mu.RLock()
	defer as.Mu.RUnlock()

	internalID, exists := as.ExternalIDtoInternalID[assetID]
	if !exists {
		return nil, false
	}
	asset, ok := as.Assets[internalID]
	return asset, ok
}

// Delete removes the asset stored under the external ID and reports whether
// it was present.
func (as *AssetStore) Delete(assetID string) bool {
	as.Mu.Lock()
	defer as.Mu.Unlock()

	internalID, exists := as.ExternalIDtoInternalID[assetID]
	if !exists {
		return false
	}
	delete(as.ExternalIDtoInternalID, assetID)
	delete(as.Assets, internalID)
	return true
}

// DeleteAll removes every asset but keeps the ID counter, so internal IDs are
// never reused within one library lifetime.
func (as *AssetStore) DeleteAll() {
	as.Mu.Lock()
	defer as.Mu.Unlock()

	as.Assets = make(map[uint32]model.Asset)
	as.ExternalIDtoInternalID = make(map[string]uint32)
}

// Len returns the number of stored assets.
func (as *AssetStore) Len() int {
	as.Mu.RLock()
	defer as.Mu.RUnlock()
	return len(as.Assets)
}
