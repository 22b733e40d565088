// Package ingress feeds utterances from MQTT into the voice pipeline.
//
// Satellites publish utterances to graylogic/voice/command/{source}; the
// ingress processes each one and publishes the outcome back on the
// matching result topic. A message on graylogic/voice/refresh forces a
// vocabulary rebuild.
package ingress
