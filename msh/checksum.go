package msh

import "github.com/zeebo/xxh3"

// Checksum hashes the serialization of doc in the given version and
// encoding. Two documents with equal checksums write identical files.
func Checksum(doc *Document, version Version, encoding Encoding, opts ...Option) (uint64, error) {
	h := xxh3.New()
	if err := Save(h, doc, version, encoding, opts...); err != nil {
		return 0, err
	}
	return h.Sum64(), nil
}
