package protocol

// Packet ids for protocol 772 (1.21.7), limited to what the client handles.
const (
	// Handshaking (C→S)
	C2SHandshake int32 = 0x00

	// Status
	C2SStatusRequest  int32 = 0x00
	C2SStatusPing     int32 = 0x01
	S2CStatusResponse int32 = 0x00
	S2CStatusPong     int32 = 0x01

	// Login (C→S)
	C2SLoginStart        int32 = 0x00
	C2SLoginAcknowledged int32 = 0x03

	// Login (S→C)
	S2CLoginSuccess   int32 = 0x02
	S2CSetCompression int32 = 0x03

	// Configuration (C→S)
	C2SConfigPluginMessage int32 = 0x02
	C2SFinishConfiguration int32 = 0x03
	C2SKnownPacks          int32 = 0x07

	// Configuration (S→C)
	S2CConfigPluginMessage int32 = 0x01
	S2CFinishConfiguration int32 = 0x03
	S2CRegistryData        int32 = 0x07
	S2CFeatureFlags        int32 = 0x0C
	S2CUpdateTags          int32 = 0x0D
	S2CKnownPacks          int32 = 0x0E

	// Play (C→S)
	C2SConfirmTeleportation int32 = 0x00
	C2SPlayKeepAlive        int32 = 0x1B
	C2SSetPlayerPosition    int32 = 0x1D
	C2SSetPlayerRotation    int32 = 0x1F

	// Play (S→C)
	S2CAddEntity                    int32 = 0x01
	S2CChangeDifficulty             int32 = 0x0A
	S2CEntityEvent                  int32 = 0x1E
	S2CTeleportEntity               int32 = 0x1F
	S2CChunkData                    int32 = 0x27
	S2CPlayKeepAlive                int32 = 0x26
	S2CPlayLogin                    int32 = 0x2B
	S2CUpdateEntityPosition         int32 = 0x2E
	S2CUpdateEntityPositionRotation int32 = 0x2F
	S2CPlayerAbilities              int32 = 0x39
	S2CPlayersInfoUpdate            int32 = 0x3F
	S2CSynchronizePlayerPosition    int32 = 0x41
	S2CSetEntityVelocity            int32 = 0x5E
	S2CSetHeldItem                  int32 = 0x62
	S2CUpdateRecipes                int32 = 0x7E
	S2CWaypoint                     int32 = 0x83
)
