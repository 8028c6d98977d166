package soc

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Board description property names. These are fixed by the board firmware and
// are the only references this driver resolves.
const (
	PropAudioCPU   = "audio-cpu"
	PropAudioCodec = "audio-codec"
)

// BoardCompatible is the board compatible string this driver matches.
const BoardCompatible = "rockchip,rk3288-chamsys-audio"

// ErrBoardNotSupported indicates the board description's compatible string
// does not match this driver.
var ErrBoardNotSupported = errors.New("no matching board compatible")

// Node is a single hardware-description node within a board description.
type Node struct {
	// Label is the node's key in the board description, set during parsing.
	Label string `yaml:"-"`

	// Compatible identifies the device bound to this node.
	Compatible string `yaml:"compatible"`

	// DAIName names the codec DAI/function to bind (e.g. "HiFi").
	// Only meaningful on codec nodes.
	DAIName string `yaml:"dai-name,omitempty"`

	// I2CBus and Reg locate the device on an I2C bus, for nodes that are
	// reached over I2C.
	I2CBus int   `yaml:"i2c-bus,omitempty"`
	Reg    uint8 `yaml:"reg,omitempty"`
}

// BoardInfo is a parsed board description: a compatible string, a set of
// labeled hardware nodes, and the sound stanza referencing two of them.
type BoardInfo struct {
	Compatible string            `yaml:"compatible"`
	Nodes      map[string]*Node  `yaml:"nodes"`
	Sound      map[string]string `yaml:"sound"`
}

// ParseBoardInfo parses a YAML board description.
func ParseBoardInfo(data []byte) (*BoardInfo, error) {
	board := &BoardInfo{}
	if err := yaml.Unmarshal(data, board); err != nil {
		return nil, fmt.Errorf("failed to parse board description: %w", err)
	}

	for label, node := range board.Nodes {
		if node == nil {
			return nil, fmt.Errorf("board node %q is empty", label)
		}
		node.Label = label
	}

	return board, nil
}

// LoadBoardInfo reads and parses a board description file.
func LoadBoardInfo(path string) (*BoardInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read board description %s: %w", path, err)
	}

	return ParseBoardInfo(data)
}

// Phandle resolves a sound-stanza property to the node it references.
// Returns nil if the property is absent or the referenced node does not exist.
func (b *BoardInfo) Phandle(prop string) *Node {
	if b == nil || b.Sound == nil {
		return nil
	}

	label, ok := b.Sound[prop]
	if !ok {
		return nil
	}

	return b.Nodes[label]
}

// ResolveLink resolves the two board-description references into a populated
// LinkDescription, or fails. On any failure no partial LinkDescription is
// retained; the attach attempt is terminal and may only be retried by calling
// Attach again.
func ResolveLink(board *BoardInfo) (*LinkDescription, error) {
	if board == nil {
		return nil, ErrBoardNotSupported
	}

	if board.Compatible != BoardCompatible {
		return nil, fmt.Errorf("%w: %q", ErrBoardNotSupported, board.Compatible)
	}

	cpu := board.Phandle(PropAudioCPU)
	if cpu == nil {
		return nil, ErrMissingCPUBinding
	}

	codec := board.Phandle(PropAudioCodec)
	if codec == nil {
		return nil, ErrMissingCodecBinding
	}

	if codec.DAIName == "" {
		return nil, fmt.Errorf("%w: node %q", ErrCodecName, codec.Label)
	}

	desc := &LinkDescription{
		Name:       "Codecs",
		StreamName: "Audio",
		Format:     SND_SOC_DAIFMT_I2S | SND_SOC_DAIFMT_NB_NF | SND_SOC_DAIFMT_CBS_CFS,
		CPU:        &Endpoint{Node: cpu},
		// The CPU interface node doubles as the platform (DMA) endpoint.
		Platform: &Endpoint{Node: cpu},
		Codec: &CodecEndpoint{
			Endpoint: Endpoint{Node: codec},
			DAIName:  codec.DAIName,
		},
	}

	return desc, nil
}
