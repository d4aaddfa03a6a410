// Package config loads the mathfield server configuration.
//
// Configuration lives in mathfield.json, mathfield.yaml or mathfield.yml.
// Every field is optional; missing values take the defaults from New:
//
//	server:
//	  host: localhost
//	  port: 8080
//	  read_timeout: 60s
//	  allowed_origins: ["https://example.com"]
//	log:
//	  level: info
//	  format: text
//	metrics:
//	  enabled: true
//	field:
//	  keyboard_container: true
//	publish:
//	  bucket: my-assets
//	  prefix: mathfield/
//
// Load errors are *errors.Error values from internal/errors with codes in
// the E1xx range.
package config
