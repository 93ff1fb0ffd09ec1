package objects

import (
	"fmt"

	"github.com/KostasZigo/kvcs/utils"
)

// Blob is stored file content.
type Blob struct {
	content []byte
	hash    string
}

func NewBlob(content []byte) *Blob {
	return &Blob{
		content: content,
		hash:    utils.ComputeHash(content),
	}
}

func (b *Blob) Hash() string {
	return b.hash
}

func (b *Blob) Content() []byte {
	return b.content
}

func (b *Blob) Size() int {
	return len(b.content)
}

func (b *Blob) String() string {
	return fmt.Sprintf("Blob{hash: %s, size: %d bytes}", b.hash, b.Size())
}
