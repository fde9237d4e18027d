// Package headers provides ready-made pack.Struct layouts for common network
// protocol headers, so raw frames captured from a socket can be decoded by
// name.
//
// Usage:
//
//	h, _ := headers.ByName("ipv4")
//	fields, err := h.Decode(buf, 0)
//
// All layouts are network byte order and carry fixed-size headers only.
// Options and payload follow the header and are left to the caller.
package headers

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rony4d/go-bitpack/pack"
)

var (
	u8  = pack.MustField(pack.NewUint(1, pack.BigEndian))
	u16 = pack.MustField(pack.NewUint(2, pack.BigEndian))
	u32 = pack.MustField(pack.NewUint(4, pack.BigEndian))
	on  = pack.MustField(pack.NewBool(0))
)

func bitsOf(width int) pack.Field {
	return pack.MustField(pack.NewBits(width, 0))
}

func raw(n int) pack.Field {
	return pack.MustField(pack.NewRaw(n))
}

var (
	ipv4 = pack.MustStruct(
		pack.Member{Name: "version", Field: bitsOf(4)},
		pack.Member{Name: "ihl", Field: bitsOf(4)},
		pack.Member{Name: "dscp", Field: bitsOf(6)},
		pack.Member{Name: "ecn", Field: bitsOf(2)},
		pack.Member{Name: "total_length", Field: u16},
		pack.Member{Name: "id", Field: u16},
		pack.Member{Name: "flags", Field: bitsOf(3)},
		pack.Member{Name: "fragment_offset", Field: bitsOf(13)},
		pack.Member{Name: "ttl", Field: u8},
		pack.Member{Name: "protocol", Field: u8},
		pack.Member{Name: "checksum", Field: u16},
		pack.Member{Name: "src", Field: raw(4)},
		pack.Member{Name: "dst", Field: raw(4)},
	)

	udp = pack.MustStruct(
		pack.Member{Name: "src_port", Field: u16},
		pack.Member{Name: "dst_port", Field: u16},
		pack.Member{Name: "length", Field: u16},
		pack.Member{Name: "checksum", Field: u16},
	)

	tcp = pack.MustStruct(
		pack.Member{Name: "src_port", Field: u16},
		pack.Member{Name: "dst_port", Field: u16},
		pack.Member{Name: "seq", Field: u32},
		pack.Member{Name: "ack_seq", Field: u32},
		pack.Member{Name: "data_offset", Field: bitsOf(4)},
		pack.Member{Name: "reserved", Field: bitsOf(3)},
		pack.Member{Name: "ns", Field: on},
		pack.Member{Name: "cwr", Field: on},
		pack.Member{Name: "ece", Field: on},
		pack.Member{Name: "urg", Field: on},
		pack.Member{Name: "ack", Field: on},
		pack.Member{Name: "psh", Field: on},
		pack.Member{Name: "rst", Field: on},
		pack.Member{Name: "syn", Field: on},
		pack.Member{Name: "fin", Field: on},
		pack.Member{Name: "window", Field: u16},
		pack.Member{Name: "checksum", Field: u16},
		pack.Member{Name: "urgent", Field: u16},
	)

	// arp is ARP for IPv4 over Ethernet.
	arp = pack.MustStruct(
		pack.Member{Name: "htype", Field: u16},
		pack.Member{Name: "ptype", Field: u16},
		pack.Member{Name: "hlen", Field: u8},
		pack.Member{Name: "plen", Field: u8},
		pack.Member{Name: "oper", Field: u16},
		pack.Member{Name: "sha", Field: raw(6)},
		pack.Member{Name: "spa", Field: raw(4)},
		pack.Member{Name: "tha", Field: raw(6)},
		pack.Member{Name: "tpa", Field: raw(4)},
	)
)

var byName = map[string]*pack.Struct{
	"ipv4": ipv4,
	"udp":  udp,
	"tcp":  tcp,
	"arp":  arp,
}

// IPv4 returns the 20-byte IPv4 header without options.
func IPv4() *pack.Struct { return ipv4 }

// UDP returns the 8-byte UDP header.
func UDP() *pack.Struct { return udp }

// TCP returns the 20-byte TCP header without options. Each control flag is
// its own boolean member.
func TCP() *pack.Struct { return tcp }

// ARP returns the 28-byte ARP packet for IPv4 over Ethernet.
func ARP() *pack.Struct { return arp }

// Names lists the known header names in sorted order.
func Names() []string {
	out := make([]string, 0, len(byName))
	for name := range byName {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ByName looks up a header layout by its case-insensitive name. This lets
// CLI flags like --header=tcp pick a layout.
func ByName(name string) (*pack.Struct, error) {
	if s, ok := byName[strings.ToLower(name)]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("unknown header: %q (valid: %s)", name, strings.Join(Names(), ", "))
}
