package fetch

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp"
)

// ErrNoKeyring is returned when a target has no keyring on disk; callers
// treat it as "GPG verification not configured" rather than a failure.
var ErrNoKeyring = errors.New("no keyring for target")

// ErrNotInManifest is returned when a checksum manifest has no entry for the
// asset. Releases often publish one manifest covering only some assets, so
// callers may treat this as "no verification material" rather than a failure.
var ErrNotInManifest = errors.New("checksum not found in manifest")

// Verifier checks downloaded assets against detached GPG signatures and
// SHA256 checksum manifests. Both checks are best-effort at the pipeline
// level: verification only runs when the release publishes the companion
// files, but once it runs, a mismatch disqualifies the asset.
type Verifier struct {
	keyringDir string
}

// NewVerifier creates a verifier reading per-target keyrings from
// keyringDir (one <target>.gpg file per target, armored or binary).
func NewVerifier(keyringDir string) *Verifier {
	return &Verifier{keyringDir: keyringDir}
}

// VerifyGPG verifies assetPath against the detached signature at sigPath
// using the target's keyring. Returns ErrNoKeyring when the target has no
// keyring file.
func (v *Verifier) VerifyGPG(assetPath, sigPath, target string) error {
	keyring, err := v.loadKeyring(target)
	if err != nil {
		return err
	}

	assetFile, err := os.Open(assetPath)
	if err != nil {
		return fmt.Errorf("open asset: %w", err)
	}
	defer assetFile.Close()

	sigFile, err := os.Open(sigPath)
	if err != nil {
		return fmt.Errorf("open signature: %w", err)
	}
	defer sigFile.Close()

	// Armored first, then raw
	_, err = openpgp.CheckArmoredDetachedSignature(keyring, assetFile, sigFile, nil)
	if err != nil {
		assetFile.Seek(0, io.SeekStart)
		sigFile.Seek(0, io.SeekStart)
		_, err = openpgp.CheckDetachedSignature(keyring, assetFile, sigFile, nil)
	}
	if err != nil {
		return fmt.Errorf("verify signature: %w", err)
	}

	return nil
}

// VerifySHA256 verifies assetPath against the checksum manifest at
// manifestPath. The manifest uses the conventional "hash  filename" lines;
// an asset missing from the manifest is an error.
func (v *Verifier) VerifySHA256(assetPath, manifestPath string) error {
	actual, err := fileSHA256(assetPath)
	if err != nil {
		return fmt.Errorf("calculate checksum: %w", err)
	}

	expected, err := findChecksum(manifestPath, filepath.Base(assetPath))
	if err != nil {
		return fmt.Errorf("find checksum: %w", err)
	}

	if !strings.EqualFold(actual, expected) {
		return fmt.Errorf("checksum mismatch for %s: got %s, want %s",
			filepath.Base(assetPath), actual, expected)
	}

	return nil
}

// HasKeyring reports whether a keyring file exists for the target.
func (v *Verifier) HasKeyring(target string) bool {
	_, err := os.Stat(v.keyringPath(target))
	return err == nil
}

func (v *Verifier) keyringPath(target string) string {
	return filepath.Join(v.keyringDir, target+".gpg")
}

// loadKeyring loads a target's keyring, accepting armored or binary form.
func (v *Verifier) loadKeyring(target string) (openpgp.EntityList, error) {
	keyringFile, err := os.Open(v.keyringPath(target))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoKeyring
		}
		return nil, fmt.Errorf("open keyring: %w", err)
	}
	defer keyringFile.Close()

	keyring, err := openpgp.ReadArmoredKeyRing(keyringFile)
	if err != nil {
		keyringFile.Seek(0, io.SeekStart)
		keyring, err = openpgp.ReadKeyRing(keyringFile)
		if err != nil {
			return nil, fmt.Errorf("read keyring: %w", err)
		}
	}

	if len(keyring) == 0 {
		return nil, fmt.Errorf("keyring is empty")
	}

	return keyring, nil
}

// fileSHA256 calculates the SHA256 checksum of a file.
func fileSHA256(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", err
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// findChecksum finds the checksum for a filename in a manifest. It accepts
// the coreutils form "abc123  filename.tar.gz" (a leading "*" on the name
// marks binary mode and is ignored) and the BSD form
// "SHA256 (filename.tar.gz) = abc123".
func findChecksum(manifestPath, filename string) (string, error) {
	file, err := os.Open(manifestPath)
	if err != nil {
		return "", fmt.Errorf("open checksum manifest: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()

		if name, sum, ok := parseBSDChecksumLine(line); ok {
			if name == filename || filepath.Base(name) == filename {
				return sum, nil
			}
			continue
		}

		parts := strings.Fields(line)
		if len(parts) < 2 {
			continue
		}

		// Manifests sometimes list paths; compare the basename too.
		name := strings.TrimPrefix(parts[1], "*")
		if name == filename || filepath.Base(name) == filename {
			return parts[0], nil
		}
	}

	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("scan checksum manifest: %w", err)
	}

	return "", fmt.Errorf("%w: %s", ErrNotInManifest, filename)
}

// parseBSDChecksumLine parses "SHA256 (filename) = hash" lines.
func parseBSDChecksumLine(line string) (name, sum string, ok bool) {
	rest, found := strings.CutPrefix(strings.TrimSpace(line), "SHA256 (")
	if !found {
		return "", "", false
	}
	name, sum, found = strings.Cut(rest, ") = ")
	if !found || name == "" || sum == "" {
		return "", "", false
	}
	return name, strings.TrimSpace(sum), true
}
