package cryptox

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

const algorithmArgon2id = "argon2id"

// Upper bounds on parameters, enforced when parsing stored records and when
// constructing a hasher. Verify on a corrupted row allocates at most 1 GiB.
const (
	maxMemoryKiB   uint32 = 1024 * 1024
	maxTime        uint32 = 64
	maxParallelism uint8  = 64
	maxKeyLength          = 1024
)

type phc struct {
	memory      uint32
	time        uint32
	parallelism uint8
	salt        []byte
	key         []byte
}

func encodePHC(p phc) string {
	return fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		algorithmArgon2id,
		argon2.Version,
		p.memory, p.time, p.parallelism,
		b64.EncodeToString(p.salt),
		b64.EncodeToString(p.key),
	)
}

func parsePHC(encoded string) (*phc, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return nil, fmt.Errorf("expected 6 '$'-separated fields, got %d", len(parts))
	}

	if parts[1] != algorithmArgon2id {
		return nil, fmt.Errorf("%w %q", errUnsupportedAlg, parts[1])
	}

	version, ok := strings.CutPrefix(parts[2], "v=")
	if !ok {
		return nil, fmt.Errorf("missing version")
	}
	v, err := strconv.Atoi(version)
	if err != nil || v != argon2.Version {
		return nil, fmt.Errorf("unsupported version %q", version)
	}

	p, err := parseParams(parts[3])
	if err != nil {
		return nil, err
	}

	p.salt, err = b64.DecodeString(parts[4])
	if err != nil {
		return nil, fmt.Errorf("salt: %w", err)
	}
	if len(p.salt) < int(minSaltLength) {
		return nil, fmt.Errorf("salt shorter than %d bytes", minSaltLength)
	}

	p.key, err = b64.DecodeString(parts[5])
	if err != nil {
		return nil, fmt.Errorf("digest: %w", err)
	}
	if len(p.key) < int(minKeyLength) || len(p.key) > maxKeyLength {
		return nil, fmt.Errorf("digest length %d out of range", len(p.key))
	}

	return p, nil
}

func parseParams(s string) (*phc, error) {
	var (
		p            phc
		seenM, seenT bool
		seenP        bool
	)

	for _, pair := range strings.Split(s, ",") {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("bad parameter %q", pair)
		}
		switch k {
		case "m":
			if seenM {
				return nil, fmt.Errorf("repeated parameter %q", k)
			}
			n, err := strconv.ParseUint(v, 10, 32)
			if err != nil || n < 1 || uint32(n) > maxMemoryKiB {
				return nil, fmt.Errorf("bad memory parameter %q", v)
			}
			p.memory, seenM = uint32(n), true
		case "t":
			if seenT {
				return nil, fmt.Errorf("repeated parameter %q", k)
			}
			n, err := strconv.ParseUint(v, 10, 32)
			if err != nil || n < 1 || uint32(n) > maxTime {
				return nil, fmt.Errorf("bad time parameter %q", v)
			}
			p.time, seenT = uint32(n), true
		case "p":
			if seenP {
				return nil, fmt.Errorf("repeated parameter %q", k)
			}
			n, err := strconv.ParseUint(v, 10, 8)
			if err != nil || n < 1 || uint8(n) > maxParallelism {
				return nil, fmt.Errorf("bad parallelism parameter %q", v)
			}
			p.parallelism, seenP = uint8(n), true
		default:
			return nil, fmt.Errorf("unknown parameter %q", k)
		}
	}

	if !seenM || !seenT || !seenP {
		return nil, fmt.Errorf("missing parameters in %q", s)
	}
	return &p, nil
}
