// Package mqtt provides MQTT client connectivity for Gray Logic Voice.
//
// This package manages:
//   - Connection to Mosquitto broker with auto-reconnect
//   - Message publishing with QoS guarantees
//   - Topic subscriptions with wildcard support
//   - Last Will and Testament (LWT) for offline detection
//   - Connection health monitoring
//
// # Architecture
//
// Gray Logic Voice uses MQTT as the ingress bus for voice satellites:
// utterances arrive on command topics and outcomes are published back on
// result topics. The broker (Mosquitto) decouples the service from the
// satellites that feed it.
//
//	Voice Satellites ↔ MQTT Broker ↔ Gray Logic Voice
//
// # Security Considerations
//
//   - TLS is required for production deployments (cfg.Broker.TLS=true)
//   - Credentials are validated against broker ACL
//   - Anonymous access is only for local development
//   - Message payloads are not encrypted beyond TLS transport
//
// # Performance Characteristics
//
//   - Connection: <1 second to local broker
//   - Publish latency: <10ms for QoS 1 to local broker
//   - Reconnect: Exponential backoff 1s-60s with jitter
//   - Message throughput: Broker-limited (typically 10K+ msg/sec)
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Subscribe to utterances from every satellite
//	err = client.Subscribe(mqtt.Topics{}.AllCommands(), 1,
//	    func(topic string, payload []byte) error {
//	        log.Printf("Received: %s = %s", topic, payload)
//	        return nil
//	    })
//
//	// Publish an outcome
//	topic := mqtt.Topics{}.Result("kitchen-satellite")
//	client.Publish(topic, []byte(`{"valid":true}`), 1, false)
package mqtt
