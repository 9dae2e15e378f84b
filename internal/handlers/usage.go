package handlers

// UsageText is served by a bare GET /.
const UsageText = `whAtIs.sh - Unix 'whatis' command API

Usage:
  # Headless request (recommended)
  curl http://whatis.sh:2095/ls
  curl http://whatis.sh:2095/grep?v=true

  # With JSON body
  curl -X GET http://whatis.sh:2095/ \
    -H "Content-Type: application/json" \
    -d '{"cmd_or_func": "awk", "verbose": false}'

  # POST request
  curl -X POST http://whatis.sh:2095/ \
    -H "Content-Type: application/json" \
    -d '{"cmd_or_func": "sed", "verbose": true}'

Examples:
  /ls          - List directory contents command
  /grep        - Global regular expression print
  /awk         - Pattern scanning and processing language
  /sed?v=true  - Stream editor (verbose)

Reserved paths:
  /health and /metrics are served by the API itself. To describe a
  command named health or metrics, send it in a JSON body.

`
