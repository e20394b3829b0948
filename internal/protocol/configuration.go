package protocol

import "io"

// PluginMessage carries a custom channel name and an opaque payload that
// spans the rest of the frame.
type PluginMessage struct {
	Channel string
	Data    []byte
}

func (p *PluginMessage) Size() int {
	return StringSize(p.Channel) + len(p.Data)
}

func (p *PluginMessage) Encode(w io.Writer) error {
	if err := WriteString(w, p.Channel); err != nil {
		return err
	}
	_, err := w.Write(p.Data)
	return err
}

func ParsePluginMessage(s *Stream) (*PluginMessage, error) {
	channel, err := ReadString(s)
	if err != nil {
		return nil, err
	}
	data, err := ReadRemainingBytes(s)
	if err != nil {
		return nil, err
	}
	return &PluginMessage{Channel: channel, Data: data}, nil
}

type FeatureFlags struct {
	Flags []string
}

func ParseFeatureFlags(s *Stream) (*FeatureFlags, error) {
	flags, err := ReadPrefixedSlice(s, func(s *Stream) (string, error) { return ReadString(s) })
	if err != nil {
		return nil, err
	}
	return &FeatureFlags{Flags: flags}, nil
}

// KnownPacks is echoed back to the server verbatim during configuration.
type KnownPacks struct {
	Packs []KnownPack
}

type KnownPack struct {
	Namespace string
	ID        string
	Version   string
}

func (p *KnownPacks) Size() int {
	size := VarintSize(int32(len(p.Packs)))
	for _, pack := range p.Packs {
		size += StringSize(pack.Namespace) + StringSize(pack.ID) + StringSize(pack.Version)
	}
	return size
}

func (p *KnownPacks) Encode(w io.Writer) error {
	return WritePrefixedSlice(w, p.Packs, func(w io.Writer, pack KnownPack) error {
		if err := WriteString(w, pack.Namespace); err != nil {
			return err
		}
		if err := WriteString(w, pack.ID); err != nil {
			return err
		}
		return WriteString(w, pack.Version)
	})
}

func ParseKnownPacks(s *Stream) (*KnownPacks, error) {
	packs, err := ReadPrefixedSlice(s, func(s *Stream) (KnownPack, error) {
		namespace, err := ReadString(s)
		if err != nil {
			return KnownPack{}, err
		}
		id, err := ReadString(s)
		if err != nil {
			return KnownPack{}, err
		}
		version, err := ReadString(s)
		if err != nil {
			return KnownPack{}, err
		}
		return KnownPack{Namespace: namespace, ID: id, Version: version}, nil
	})
	if err != nil {
		return nil, err
	}
	return &KnownPacks{Packs: packs}, nil
}

// FinishConfiguration is both the server's signal and the client's ack; the
// ack moves the connection to the Play state.
type FinishConfiguration struct{}

func (p *FinishConfiguration) Size() int                { return 0 }
func (p *FinishConfiguration) Encode(w io.Writer) error { return nil }

type RegistryData struct {
	RegistryID string
	Entries    []RegistryEntry
}

type RegistryEntry struct {
	ID   string
	Data *NBTNode
}

func ParseRegistryData(s *Stream) (*RegistryData, error) {
	registryID, err := ReadString(s)
	if err != nil {
		return nil, err
	}
	entries, err := ReadPrefixedSlice(s, func(s *Stream) (RegistryEntry, error) {
		id, err := ReadString(s)
		if err != nil {
			return RegistryEntry{}, err
		}
		data, err := ReadOption(s, func(s *Stream) (*NBTNode, error) { return ReadNBT(s) })
		if err != nil {
			return RegistryEntry{}, err
		}
		entry := RegistryEntry{ID: id}
		if data != nil {
			entry.Data = *data
		}
		return entry, nil
	})
	if err != nil {
		return nil, err
	}
	return &RegistryData{RegistryID: registryID, Entries: entries}, nil
}

type UpdateTags struct {
	Registries []TagRegistry
}

type TagRegistry struct {
	Registry string
	Tags     []Tag
}

type Tag struct {
	Name    string
	Entries []int32
}

func ParseUpdateTags(s *Stream) (*UpdateTags, error) {
	registries, err := ReadPrefixedSlice(s, func(s *Stream) (TagRegistry, error) {
		registry, err := ReadString(s)
		if err != nil {
			return TagRegistry{}, err
		}
		tags, err := ReadPrefixedSlice(s, func(s *Stream) (Tag, error) {
			name, err := ReadString(s)
			if err != nil {
				return Tag{}, err
			}
			entries, err := ReadPrefixedSlice(s, func(s *Stream) (int32, error) { return ReadVarint(s) })
			if err != nil {
				return Tag{}, err
			}
			return Tag{Name: name, Entries: entries}, nil
		})
		if err != nil {
			return TagRegistry{}, err
		}
		return TagRegistry{Registry: registry, Tags: tags}, nil
	})
	if err != nil {
		return nil, err
	}
	return &UpdateTags{Registries: registries}, nil
}
