package main

import (
	"awscli-update/cmd" // Import the cmd package which contains the CLI command and execution logic
)

// main is the program entry point.
// It delegates to cmd.Execute() which handles command line argument parsing and execution.
//
// awscli-update keeps an AWS CLI v2 installation current:
//   - Reads the latest release from the AWS CLI v2 changelog page
//   - Reads the installed release from `aws --version`
//   - Downloads and runs the official installer for Linux (zip bundle), macOS (.pkg)
//     or Windows (.msi) when the installed release is missing or outdated
//
// Error handling strategy:
//   - Version discovery problems and refused installs are reported and end the run normally
//   - Download, extraction and installer failures exit with a non-zero status
func main() {
	cmd.Execute()
}
