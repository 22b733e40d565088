// Package hub provides the discovery client for a Home Assistant-compatible
// automation hub.
//
// The hub is the source of truth for what exists in the home: entities and
// their state, the entity registry (entity → owning device links and direct
// area assignments), the device registry (device → area assignments and
// user-given names), and the area registry (area ids and display names).
//
// The client speaks the hub's WebSocket API: an auth handshake followed by
// id-correlated request/response commands. One call to FetchDump collects a
// consistent snapshot of all four datasets; the snapshot is immutable once
// returned and is the sole input to the vocabulary pipeline.
//
//	client, err := hub.Connect(ctx, cfg, logger)
//	if err != nil { ... }
//	defer client.Close()
//
//	dump, err := client.FetchDump(ctx)
//
// Thread Safety: Client is safe for concurrent use; concurrent FetchDump
// calls are correlated by message id.
package hub
