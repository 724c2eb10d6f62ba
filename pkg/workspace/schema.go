package workspace

import "fmt"

// Redis key pattern helpers
//
// All keys and Pub/Sub channels are namespaced by instance name so that
// multiple drafter projects can safely coexist on a single Redis server.
//
// Key pattern: drafter:{instance_name}:{entity}
// Channel pattern: drafter:{instance_name}:{event_type}_events

// ProjectKey returns the Redis key holding the snapshot blob.
// Pattern: drafter:{instance_name}:project
func ProjectKey(instanceName string) string {
	return fmt.Sprintf("drafter:%s:project", instanceName)
}

// SnapshotEventsChannel returns the Pub/Sub channel for snapshot events.
// The full snapshot JSON is published here after every save.
// Pattern: drafter:{instance_name}:snapshot_events
func SnapshotEventsChannel(instanceName string) string {
	return fmt.Sprintf("drafter:%s:snapshot_events", instanceName)
}
