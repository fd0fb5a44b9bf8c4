// Package video maps target video codec names to ffmpeg encoders and their
// constant-quality (CRF) limits.
package video
